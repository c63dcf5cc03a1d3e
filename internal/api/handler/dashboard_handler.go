package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sustaincity/city-backend/internal/core/ports"
)

// DashboardHandler serves the mock dashboard, indicator, and system payloads.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// @Summary      Dashboard headline stats
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Stats())
}

// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardOverview
// @Router       /api/dashboard/overview [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Overview())
}

// @Summary      Indicator data for a mode
// @Tags         indicators
// @Produce      json
// @Security     BearerAuth
// @Param        mode  path  string  true  "Indicator mode (traffic, air, energy, ...)"
// @Success      200  {object}  ports.IndicatorData
// @Router       /api/indicators/{mode} [get]
func (h *DashboardHandler) Indicator(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Indicator(c.Param("mode")))
}

// @Summary      System status
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SystemStatus
// @Router       /api/system/status [get]
func (h *DashboardHandler) SystemStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.SystemStatus())
}

// @Summary      System health
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/system/health [get]
func (h *DashboardHandler) SystemHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.SystemHealth())
}
