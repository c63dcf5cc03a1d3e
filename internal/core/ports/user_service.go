package ports

import (
	"context"

	"github.com/sustaincity/city-backend/internal/core/domain"
)

// CreateUserInput carries the fields for an explicit user creation call.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Name     string
}

// UpdateUserInput is a partial update. Nil fields are left untouched; a
// non-nil Active always overwrites.
type UpdateUserInput struct {
	Email  *string
	Name   *string
	Role   *string
	Active *bool
}

type UserService interface {
	List(ctx context.Context) []domain.User
	Create(ctx context.Context, role string, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) bool
}
