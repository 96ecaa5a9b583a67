// internal/domain/merchant.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Merchant is a redemption destination. Its discount rate scales down the
// real-currency cost a liquidity pool pays when a redemption is attributed
// to it. Read-only from the core's perspective.
type Merchant struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Category     string          `db:"category" json:"category"`
	DiscountRate decimal.Decimal `db:"discount_rate" json:"discount_rate"` // Fraction in [0, 1)
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// NewMerchant creates a merchant with the given discount rate.
func NewMerchant(name, category string, discountRate decimal.Decimal) *Merchant {
	return &Merchant{
		ID:           uuid.NewString(),
		Name:         name,
		Category:     category,
		DiscountRate: discountRate,
		CreatedAt:    time.Now().UTC(),
	}
}
