// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds balances for one user. A wallet with a nil UserID is a
// system wallet. Wallets are reference data: the core never creates them
// as part of a value movement.
type Wallet struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewWallet creates a new Wallet owned by the given user.
func NewWallet(userID string) *Wallet {
	return &Wallet{
		ID:        uuid.NewString(),
		UserID:    &userID,
		CreatedAt: time.Now().UTC(),
	}
}

// NewSystemWallet creates a wallet that is not attached to any user.
func NewSystemWallet() *Wallet {
	return &Wallet{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}
