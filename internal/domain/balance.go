// internal/domain/balance.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is the current quantity of one credit definition held by one
// wallet. Unique on (wallet_id, credit_def_id). Created lazily at zero on
// the first credit to a pair and mutated in place afterwards; the amount
// must never go below zero.
type Balance struct {
	ID          string          `db:"id" json:"id"`
	WalletID    string          `db:"wallet_id" json:"wallet_id"`
	CreditDefID string          `db:"credit_def_id" json:"credit_def_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20,4), >= 0
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewBalance creates a zero balance for a (wallet, definition) pair.
func NewBalance(walletID, creditDefID string) *Balance {
	now := time.Now().UTC()
	return &Balance{
		ID:          uuid.NewString(),
		WalletID:    walletID,
		CreditDefID: creditDefID,
		Amount:      decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WalletBalance is the read-side projection of a balance joined with its
// definition, consumed by dashboards.
type WalletBalance struct {
	WalletID    string          `db:"wallet_id" json:"wallet_id"`
	CreditDefID string          `db:"credit_def_id" json:"credit_def_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Name        string          `db:"name" json:"name"`
	Symbol      string          `db:"symbol" json:"symbol"`
	Kind        CreditKind      `db:"kind" json:"kind"`
	IssuerID    string          `db:"issuer_id" json:"issuer_id"`
}
