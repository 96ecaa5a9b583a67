// internal/repository/postgres/merchant_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// MerchantRepository implements repository.MerchantRepository for
// PostgreSQL.
type MerchantRepository struct{}

// NewMerchantRepository creates a new MerchantRepository.
func NewMerchantRepository() repository.MerchantRepository {
	return &MerchantRepository{}
}

func (r *MerchantRepository) Create(ctx context.Context, q repository.DBExecutor, merchant *domain.Merchant) error {
	query := `INSERT INTO merchants (id, name, category, discount_rate, created_at)
              VALUES ($1, $2, $3, $4, $5)`
	if _, err := q.ExecContext(ctx, query,
		merchant.ID, merchant.Name, merchant.Category, merchant.DiscountRate, merchant.CreatedAt); err != nil {
		return fmt.Errorf("failed to create merchant: %w", err)
	}
	return nil
}

func (r *MerchantRepository) GetByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	query := `SELECT id, name, category, discount_rate, created_at FROM merchants WHERE id = $1`
	if err := q.GetContext(ctx, &merchant, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get merchant %s: %w", id, err)
	}
	return &merchant, nil
}
