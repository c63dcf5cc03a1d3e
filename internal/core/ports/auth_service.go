package ports

import (
	"context"

	"github.com/sustaincity/city-backend/internal/core/domain"
)

// RegisterInput carries the caller-supplied registration fields. The role is
// never part of the input; it is fixed by the registration endpoint.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Name     string
}

type AuthService interface {
	// Login returns a signed token and the authenticated user. Unknown
	// usernames and wrong passwords both fail with ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Register creates a user with the given fixed role and issues a token
	// exactly as Login does.
	Register(ctx context.Context, role string, in RegisterInput) (string, *domain.User, error)
}
