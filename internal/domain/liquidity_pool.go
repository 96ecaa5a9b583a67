// internal/domain/liquidity_pool.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiquidityPool is the real-currency reserve backing redemptions of one
// credit definition. At most one pool exists per definition. Redemption
// decrements it and must never drive it negative.
type LiquidityPool struct {
	ID          string          `db:"id" json:"id"`
	CreditDefID string          `db:"credit_def_id" json:"credit_def_id"` // Unique
	Balance     decimal.Decimal `db:"balance" json:"balance"`             // NUMERIC(20,4), >= 0
	Currency    string          `db:"currency" json:"currency"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewLiquidityPool creates a USD pool for a definition with the given
// opening balance.
func NewLiquidityPool(creditDefID string, balance decimal.Decimal) *LiquidityPool {
	now := time.Now().UTC()
	return &LiquidityPool{
		ID:          uuid.NewString(),
		CreditDefID: creditDefID,
		Balance:     balance,
		Currency:    "USD",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
