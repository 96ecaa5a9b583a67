// internal/repository/ledger_repo.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// LedgerRepository defines data operations for the immutable audit trail:
// ledger transactions, their entries, and the aggregates dashboards read.
// Transactions and entries are append-only; there is no update or delete.
type LedgerRepository interface {
	// CreateTransaction appends a transaction record.
	CreateTransaction(ctx context.Context, q DBExecutor, tx *domain.LedgerTransaction) error
	// CreateEntry appends an entry to a transaction.
	CreateEntry(ctx context.Context, q DBExecutor, entry *domain.LedgerEntry) error
	// GetTransactionByID retrieves one transaction.
	GetTransactionByID(ctx context.Context, q DBExecutor, id string) (*domain.LedgerTransaction, error)
	// ListEntriesByTransaction retrieves a transaction's entries in
	// application order.
	ListEntriesByTransaction(ctx context.Context, q DBExecutor, transactionID string) ([]domain.LedgerEntry, error)
	// ListTransactionsByWallet retrieves transactions touching a wallet,
	// newest first, with the total count for pagination.
	ListTransactionsByWallet(ctx context.Context, q DBExecutor, walletID string, limit, offset int) ([]domain.LedgerTransaction, int64, error)

	// CountTransactions returns the total number of ledger transactions.
	CountTransactions(ctx context.Context, q DBExecutor) (int64, error)
	// SumEntriesByTransactionType sums entry amounts across transactions of
	// one type, optionally restricted to a set of credit definitions.
	// A nil or empty creditDefIDs means no restriction.
	SumEntriesByTransactionType(ctx context.Context, q DBExecutor, txType domain.TransactionType, creditDefIDs []string) (decimal.Decimal, error)
	// CountTransactionsByTypeSince counts transactions of one type created
	// after the cutoff whose entries touch the given definitions.
	CountTransactionsByTypeSince(ctx context.Context, q DBExecutor, txType domain.TransactionType, creditDefIDs []string, since time.Time) (int64, error)
}
