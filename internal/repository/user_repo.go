// internal/repository/user_repo.go
package repository

import (
	"context"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// UserRepository defines data operations for users.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetByID retrieves a user by their ID.
	GetByID(ctx context.Context, q DBExecutor, id string) (*domain.User, error)
	// GetByEmail retrieves a user by their unique email.
	GetByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
}
