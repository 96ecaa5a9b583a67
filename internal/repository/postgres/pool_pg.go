// internal/repository/postgres/pool_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// LiquidityPoolRepository implements repository.LiquidityPoolRepository
// for PostgreSQL.
type LiquidityPoolRepository struct{}

// NewLiquidityPoolRepository creates a new LiquidityPoolRepository.
func NewLiquidityPoolRepository() repository.LiquidityPoolRepository {
	return &LiquidityPoolRepository{}
}

func (r *LiquidityPoolRepository) Create(ctx context.Context, q repository.DBExecutor, pool *domain.LiquidityPool) error {
	query := `INSERT INTO liquidity_pools (id, credit_def_id, balance, currency, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := q.ExecContext(ctx, query,
		pool.ID, pool.CreditDefID, pool.Balance, pool.Currency, pool.CreatedAt, pool.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create liquidity pool: %w", err)
	}
	return nil
}

const poolColumns = `id, credit_def_id, balance, currency, created_at, updated_at`

func (r *LiquidityPoolRepository) GetByCreditDef(ctx context.Context, q repository.DBExecutor, creditDefID string) (*domain.LiquidityPool, error) {
	var pool domain.LiquidityPool
	query := `SELECT ` + poolColumns + ` FROM liquidity_pools WHERE credit_def_id = $1`
	if err := q.GetContext(ctx, &pool, query, creditDefID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pool for definition %s: %w", creditDefID, err)
	}
	return &pool, nil
}

func (r *LiquidityPoolRepository) GetByCreditDefForUpdate(ctx context.Context, q repository.DBExecutor, creditDefID string) (*domain.LiquidityPool, error) {
	var pool domain.LiquidityPool
	query := `SELECT ` + poolColumns + ` FROM liquidity_pools WHERE credit_def_id = $1 FOR UPDATE`
	if err := q.GetContext(ctx, &pool, query, creditDefID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock pool for definition %s: %w", creditDefID, err)
	}
	return &pool, nil
}

func (r *LiquidityPoolRepository) AddToBalance(ctx context.Context, q repository.DBExecutor, id string, delta decimal.Decimal) error {
	query := `UPDATE liquidity_pools SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update pool %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for pool %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pool %s vanished during update: %w", id, util.ErrNotFound)
	}
	return nil
}
