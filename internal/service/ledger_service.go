// internal/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
	"github.com/shriddemon/value-os-platform/pkg/db"
)

// LedgerService is the low-level double-entry bookkeeping engine. Every
// balance mutation in the system goes through it: it applies a batch of
// debit/credit entries as one atomic unit, enforcing that amounts are
// strictly positive and that no debit drives a balance negative.
type LedgerService interface {
	// RecordTransaction applies the batch inside its own store transaction:
	// either every entry commits or none do.
	RecordTransaction(ctx context.Context, txType domain.TransactionType, entries []domain.EntryInput, metadata map[string]any) (*domain.TransactionResult, error)
	// RecordTransactionIn applies the batch inside a caller-owned
	// transaction executor. Callers use it to widen the atomic scope over
	// adjacent writes (the redemption pool decrement); they own commit and
	// rollback.
	RecordTransactionIn(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, entries []domain.EntryInput, metadata map[string]any) (*domain.TransactionResult, error)
}

type ledgerService struct {
	dbBeginner  db.DBTxBeginner
	balanceRepo repository.BalanceRepository
	ledgerRepo  repository.LedgerRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
	logger      *slog.Logger
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	balanceRepo repository.BalanceRepository,
	ledgerRepo repository.LedgerRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) LedgerService {
	return &ledgerService{
		dbBeginner:  dbBeginner,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
		logger:      logger,
	}
}

// validateEntries rejects malformed batches before any store work.
func validateEntries(entries []domain.EntryInput) error {
	if len(entries) == 0 {
		return fmt.Errorf("empty entry batch: %w", util.ErrInvalidInput)
	}
	for i, entry := range entries {
		if entry.WalletID == "" || entry.CreditDefID == "" {
			return fmt.Errorf("entry %d: missing wallet or definition id: %w", i, util.ErrInvalidInput)
		}
		if entry.Direction != domain.DirectionDebit && entry.Direction != domain.DirectionCredit {
			return fmt.Errorf("entry %d: invalid direction %q: %w", i, entry.Direction, util.ErrInvalidInput)
		}
		if !entry.Amount.IsPositive() {
			return fmt.Errorf("entry %d: ledger amounts must be positive: %w", i, util.ErrInvalidInput)
		}
	}
	return nil
}

func (s *ledgerService) RecordTransaction(ctx context.Context, txType domain.TransactionType, entries []domain.EntryInput, metadata map[string]any) (*domain.TransactionResult, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("record transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("record transaction: transaction controller does not implement DBExecutor")
	}

	result, err := s.RecordTransactionIn(ctx, txExecutor, txType, entries, metadata)
	if err != nil {
		return nil, err
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("record transaction: failed to commit transaction: %w", err)
	}
	return result, nil
}

func (s *ledgerService) RecordTransactionIn(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, entries []domain.EntryInput, metadata map[string]any) (*domain.TransactionResult, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	transaction := domain.NewLedgerTransaction(txType, metadata)
	if err := s.ledgerRepo.CreateTransaction(ctx, q, transaction); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	posted := make([]domain.LedgerEntry, 0, len(entries))
	for _, in := range entries {
		// Lock the balance row, creating it lazily at zero on first use of
		// a (wallet, definition) pair. The lock holds until commit, so the
		// overdraw check and the write serialize against concurrent
		// transactions on the same pair.
		balance, err := s.balanceRepo.GetForUpdate(ctx, q, in.WalletID, in.CreditDefID)
		if errors.Is(err, util.ErrNotFound) {
			balance = domain.NewBalance(in.WalletID, in.CreditDefID)
			if err := s.balanceRepo.Create(ctx, q, balance); err != nil {
				return nil, fmt.Errorf("record transaction: lazy balance init: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("record transaction: %w", err)
		}

		var newAmount = balance.Amount
		if in.Direction == domain.DirectionCredit {
			newAmount = newAmount.Add(in.Amount)
		} else {
			newAmount = newAmount.Sub(in.Amount)
		}

		if in.Direction == domain.DirectionDebit && newAmount.IsNegative() {
			return nil, &util.InsufficientFundsError{
				WalletID:    in.WalletID,
				CreditDefID: in.CreditDefID,
				Available:   balance.Amount,
				Requested:   in.Amount,
			}
		}

		if err := s.balanceRepo.UpdateAmount(ctx, q, balance.ID, newAmount); err != nil {
			return nil, fmt.Errorf("record transaction: %w", err)
		}

		entry := domain.NewLedgerEntry(transaction.ID, in, newAmount)
		if err := s.ledgerRepo.CreateEntry(ctx, q, entry); err != nil {
			return nil, fmt.Errorf("record transaction: %w", err)
		}
		posted = append(posted, *entry)
	}

	s.logger.Debug("ledger transaction posted",
		"transaction_id", transaction.ID, "type", txType, "entries", len(posted))

	return &domain.TransactionResult{Transaction: transaction, Entries: posted}, nil
}
