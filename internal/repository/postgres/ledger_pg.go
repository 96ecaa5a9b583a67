// internal/repository/postgres/ledger_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
// Writes are inserts only; the audit trail has no update path.
type LedgerRepository struct{}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository() repository.LedgerRepository {
	return &LedgerRepository{}
}

func (r *LedgerRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, tx *domain.LedgerTransaction) error {
	query := `INSERT INTO ledger_transactions (id, type, status, metadata, created_at, finalized_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := q.ExecContext(ctx, query, tx.ID, tx.Type, tx.Status, tx.Metadata, tx.CreatedAt, tx.FinalizedAt); err != nil {
		return fmt.Errorf("failed to create ledger transaction: %w", err)
	}
	return nil
}

func (r *LedgerRepository) CreateEntry(ctx context.Context, q repository.DBExecutor, entry *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, transaction_id, wallet_id, credit_def_id, direction, amount, balance_after, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := q.ExecContext(ctx, query,
		entry.ID, entry.TransactionID, entry.WalletID, entry.CreditDefID,
		entry.Direction, entry.Amount, entry.BalanceAfter, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.LedgerTransaction, error) {
	var tx domain.LedgerTransaction
	query := `SELECT id, type, status, metadata, created_at, finalized_at FROM ledger_transactions WHERE id = $1`
	if err := q.GetContext(ctx, &tx, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ledger transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (r *LedgerRepository) ListEntriesByTransaction(ctx context.Context, q repository.DBExecutor, transactionID string) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	query := `SELECT id, transaction_id, wallet_id, credit_def_id, direction, amount, balance_after, created_at
              FROM ledger_entries WHERE transaction_id = $1 ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &entries, query, transactionID); err != nil {
		return nil, fmt.Errorf("failed to list entries for transaction %s: %w", transactionID, err)
	}
	return entries, nil
}

func (r *LedgerRepository) ListTransactionsByWallet(ctx context.Context, q repository.DBExecutor, walletID string, limit, offset int) ([]domain.LedgerTransaction, int64, error) {
	txs := []domain.LedgerTransaction{}
	query := `SELECT DISTINCT t.id, t.type, t.status, t.metadata, t.created_at, t.finalized_at
              FROM ledger_transactions t
              JOIN ledger_entries e ON e.transaction_id = t.id
              WHERE e.wallet_id = $1
              ORDER BY t.created_at DESC
              LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &txs, query, walletID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions for wallet %s: %w", walletID, err)
	}

	var total int64
	countQuery := `SELECT COUNT(DISTINCT t.id)
                   FROM ledger_transactions t
                   JOIN ledger_entries e ON e.transaction_id = t.id
                   WHERE e.wallet_id = $1`
	if err := q.GetContext(ctx, &total, countQuery, walletID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for wallet %s: %w", walletID, err)
	}
	return txs, total, nil
}

func (r *LedgerRepository) CountTransactions(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var count int64
	if err := q.GetContext(ctx, &count, `SELECT COUNT(*) FROM ledger_transactions`); err != nil {
		return 0, fmt.Errorf("failed to count ledger transactions: %w", err)
	}
	return count, nil
}

func (r *LedgerRepository) SumEntriesByTransactionType(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, creditDefIDs []string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	var err error
	if len(creditDefIDs) == 0 {
		query := `SELECT COALESCE(SUM(e.amount), 0)
                  FROM ledger_entries e
                  JOIN ledger_transactions t ON t.id = e.transaction_id
                  WHERE t.type = $1`
		err = q.GetContext(ctx, &sum, query, txType)
	} else {
		query := `SELECT COALESCE(SUM(e.amount), 0)
                  FROM ledger_entries e
                  JOIN ledger_transactions t ON t.id = e.transaction_id
                  WHERE t.type = $1 AND e.credit_def_id = ANY($2)`
		err = q.GetContext(ctx, &sum, query, txType, pq.Array(creditDefIDs))
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s entries: %w", txType, err)
	}
	return sum, nil
}

func (r *LedgerRepository) CountTransactionsByTypeSince(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, creditDefIDs []string, since time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(DISTINCT t.id)
              FROM ledger_transactions t
              JOIN ledger_entries e ON e.transaction_id = t.id
              WHERE t.type = $1 AND t.created_at >= $2 AND e.credit_def_id = ANY($3)`
	if err := q.GetContext(ctx, &count, query, txType, since, pq.Array(creditDefIDs)); err != nil {
		return 0, fmt.Errorf("failed to count %s transactions: %w", txType, err)
	}
	return count, nil
}
