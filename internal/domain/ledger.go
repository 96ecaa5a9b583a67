// internal/domain/ledger.go
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType defines the kind of a ledger transaction.
type TransactionType string

const (
	TransactionTypeMint     TransactionType = "MINT"
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeBurn     TransactionType = "BURN"
)

// TransactionStatus defines the status of a ledger transaction. The engine
// only ever writes completed transactions; there is no pending state.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// EntryDirection is the accounting side of a ledger entry.
type EntryDirection string

const (
	DirectionDebit  EntryDirection = "DEBIT"
	DirectionCredit EntryDirection = "CREDIT"
)

// LedgerTransaction is an immutable record of one logical value movement.
type LedgerTransaction struct {
	ID          string            `db:"id" json:"id"`
	Type        TransactionType   `db:"type" json:"type"`
	Status      TransactionStatus `db:"status" json:"status"`
	Metadata    string            `db:"metadata" json:"metadata"` // Caller-supplied context, serialized verbatim
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	FinalizedAt *time.Time        `db:"finalized_at" json:"finalized_at"`
}

// NewLedgerTransaction creates a completed transaction record with the
// metadata serialized as JSON. Unserializable metadata degrades to "{}"
// rather than blocking the movement.
func NewLedgerTransaction(txType TransactionType, metadata map[string]any) *LedgerTransaction {
	now := time.Now().UTC()
	encoded := "{}"
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			encoded = string(raw)
		}
	}
	return &LedgerTransaction{
		ID:          uuid.NewString(),
		Type:        txType,
		Status:      TransactionStatusCompleted,
		Metadata:    encoded,
		CreatedAt:   now,
		FinalizedAt: &now,
	}
}

// LedgerEntry is an immutable line item of one transaction: a single
// debit or credit against one (wallet, definition) balance, snapshotting
// the balance after application. Entries are append-only.
type LedgerEntry struct {
	ID            string          `db:"id" json:"id"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	WalletID      string          `db:"wallet_id" json:"wallet_id"`
	CreditDefID   string          `db:"credit_def_id" json:"credit_def_id"`
	Direction     EntryDirection  `db:"direction" json:"direction"`
	Amount        decimal.Decimal `db:"amount" json:"amount"` // Strictly positive
	BalanceAfter  decimal.Decimal `db:"balance_after" json:"balance_after"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewLedgerEntry creates an entry for the given input and post-balance.
func NewLedgerEntry(transactionID string, in EntryInput, balanceAfter decimal.Decimal) *LedgerEntry {
	return &LedgerEntry{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		WalletID:      in.WalletID,
		CreditDefID:   in.CreditDefID,
		Direction:     in.Direction,
		Amount:        in.Amount,
		BalanceAfter:  balanceAfter,
		CreatedAt:     time.Now().UTC(),
	}
}

// EntryInput is one proposed debit or credit in a transaction batch.
type EntryInput struct {
	WalletID    string          `json:"wallet_id"`
	CreditDefID string          `json:"credit_def_id"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   EntryDirection  `json:"direction"`
}

// TransactionResult is what the ledger engine hands back: the transaction
// record plus the posted entries in application order, each carrying its
// post-balance for caller-side reconciliation.
type TransactionResult struct {
	Transaction *LedgerTransaction `json:"transaction"`
	Entries     []LedgerEntry      `json:"entries"`
}

// ExchangeResult is the outcome of converting an external credit into the
// internal liquid asset.
type ExchangeResult struct {
	Success bool            `json:"success"`
	Swapped decimal.Decimal `json:"swapped"`
}
