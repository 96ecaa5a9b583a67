// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// WalletRepository defines data operations for wallets. Wallets are
// reference data created by external collaborators; the core only reads.
type WalletRepository interface {
	// Create adds a new wallet.
	Create(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetByID retrieves a wallet by its ID.
	GetByID(ctx context.Context, q DBExecutor, id string) (*domain.Wallet, error)
}
