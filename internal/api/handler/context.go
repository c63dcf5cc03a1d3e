package handler

import "github.com/labstack/echo/v4"

// callerUsername returns the authenticated subject injected by the Auth
// middleware, or "anonymous" when the route runs without it.
func callerUsername(c echo.Context) string {
	if username, ok := c.Get("username").(string); ok && username != "" {
		return username
	}
	return "anonymous"
}
