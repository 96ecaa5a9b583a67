// internal/repository/merchant_repo.go
package repository

import (
	"context"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// MerchantRepository defines data operations for merchants.
type MerchantRepository interface {
	// Create adds a new merchant.
	Create(ctx context.Context, q DBExecutor, merchant *domain.Merchant) error
	// GetByID retrieves a merchant by its ID.
	GetByID(ctx context.Context, q DBExecutor, id string) (*domain.Merchant, error)
}
