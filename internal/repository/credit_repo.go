// internal/repository/credit_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// CreditDefinitionRepository defines data operations for credit
// definitions.
type CreditDefinitionRepository interface {
	// Create adds a new definition; fails on a duplicate id.
	Create(ctx context.Context, q DBExecutor, def *domain.CreditDefinition) error
	// Upsert inserts the definition if its id is not taken and is a no-op
	// otherwise. Used by the orchestrator's idempotent auto-provisioning.
	Upsert(ctx context.Context, q DBExecutor, def *domain.CreditDefinition) error
	// GetByID retrieves a definition by its ID.
	GetByID(ctx context.Context, q DBExecutor, id string) (*domain.CreditDefinition, error)
	// List retrieves all definitions.
	List(ctx context.Context, q DBExecutor) ([]domain.CreditDefinition, error)
	// ListIDsByIssuer retrieves the definition ids owned by one issuer.
	ListIDsByIssuer(ctx context.Context, q DBExecutor, issuerID string) ([]string, error)
}

// BalanceRepository defines data operations for balances. All mutation
// happens inside the ledger engine's transaction; GetForUpdate takes a row
// lock so the insufficient-funds check and the write serialize against
// concurrent transactions on the same (wallet, definition) pair.
type BalanceRepository interface {
	// Create inserts a balance row (normally zero, lazy initialization).
	Create(ctx context.Context, q DBExecutor, balance *domain.Balance) error
	// Get retrieves the balance for a (wallet, definition) pair.
	Get(ctx context.Context, q DBExecutor, walletID, creditDefID string) (*domain.Balance, error)
	// GetForUpdate retrieves the balance with a row-level lock. Must run
	// inside a transaction.
	GetForUpdate(ctx context.Context, q DBExecutor, walletID, creditDefID string) (*domain.Balance, error)
	// UpdateAmount sets the balance to the given amount.
	UpdateAmount(ctx context.Context, q DBExecutor, id string, amount decimal.Decimal) error
	// ListByWallet retrieves all balances of a wallet joined with their
	// definitions.
	ListByWallet(ctx context.Context, q DBExecutor, walletID string) ([]domain.WalletBalance, error)
}
