// internal/repository/pool_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// LiquidityPoolRepository defines data operations for liquidity pools.
// The solvency check and the decrement must happen under the same row
// lock, hence GetByCreditDefForUpdate.
type LiquidityPoolRepository interface {
	// Create adds a pool for a definition.
	Create(ctx context.Context, q DBExecutor, pool *domain.LiquidityPool) error
	// GetByCreditDef retrieves the pool backing a definition.
	GetByCreditDef(ctx context.Context, q DBExecutor, creditDefID string) (*domain.LiquidityPool, error)
	// GetByCreditDefForUpdate retrieves the pool with a row-level lock.
	// Must run inside a transaction.
	GetByCreditDefForUpdate(ctx context.Context, q DBExecutor, creditDefID string) (*domain.LiquidityPool, error)
	// AddToBalance adjusts the pool balance by delta (negative to spend).
	AddToBalance(ctx context.Context, q DBExecutor, id string, delta decimal.Decimal) error
}
