package domain

import (
	"errors"
	"time"
)

// Role values match the wire format the dashboard frontend expects.
const (
	RoleGovernmentAdmin      = "ROLE_GOVERNMENT_ADMIN"
	RoleCityManager          = "ROLE_CITY_MANAGER"
	RoleServiceProviderAdmin = "ROLE_SERVICE_PROVIDER_ADMIN"
	RoleServiceProviderUser  = "ROLE_SERVICE_PROVIDER_USER"
)

var ErrUserExists = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleGovernmentAdmin, RoleCityManager, RoleServiceProviderAdmin, RoleServiceProviderUser:
		return true
	}
	return false
}

// User models an authenticated actor in the system. PasswordHash is never
// serialized; every view handed to the HTTP layer is safe to render as-is.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email,omitempty"`
	Name         string     `json:"name,omitempty"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
