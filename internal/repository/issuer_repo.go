// internal/repository/issuer_repo.go
package repository

import (
	"context"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// IssuerRepository defines data operations for issuers.
type IssuerRepository interface {
	// Create adds a new issuer.
	Create(ctx context.Context, q DBExecutor, issuer *domain.Issuer) error
	// GetByID retrieves an issuer by its ID.
	GetByID(ctx context.Context, q DBExecutor, id string) (*domain.Issuer, error)
	// GetFirst retrieves the oldest issuer, used as the fallback owner for
	// auto-provisioned definitions.
	GetFirst(ctx context.Context, q DBExecutor) (*domain.Issuer, error)
	// List retrieves all issuers.
	List(ctx context.Context, q DBExecutor) ([]domain.Issuer, error)
}
