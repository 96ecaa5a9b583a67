// internal/domain/credit_definition.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditKind classifies a fungible loyalty/value asset.
type CreditKind string

const (
	CreditKindLoyaltyPoint CreditKind = "LOYALTY_POINT"
	CreditKindGiftCard     CreditKind = "GIFT_CARD"
	CreditKindAirlineMile  CreditKind = "AIRLINE_MILE"
)

// The platform's internal liquid asset. Exchange converts external credits
// into it at a fixed rate. Its id is a well-known constant so that every
// node provisions the same row.
const (
	InternalAssetID     = "VAL_ASSET"
	InternalAssetName   = "Value OS Liquid"
	InternalAssetSymbol = "$VAL"
)

// Placeholder identity used when minting references a definition that does
// not exist yet and the orchestrator self-heals.
const (
	PlaceholderAssetName   = "Demo Asset"
	PlaceholderAssetSymbol = "DMA"
)

// CreditDefinition is a named, symbol-tagged fungible asset type owned by
// one issuer. Its identity is immutable once minted against.
type CreditDefinition struct {
	ID        string          `db:"id" json:"id"`
	IssuerID  string          `db:"issuer_id" json:"issuer_id"`
	Name      string          `db:"name" json:"name"`
	Symbol    string          `db:"symbol" json:"symbol"`
	Kind      CreditKind      `db:"kind" json:"kind"`
	Decimals  int32           `db:"decimals" json:"decimals"`
	RateToUSD decimal.Decimal `db:"rate_to_usd" json:"rate_to_usd"` // Base exchange rate, NUMERIC(20,4)
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewCreditDefinition creates a definition with the platform defaults:
// two decimal places and the fixed $0.01 base rate.
func NewCreditDefinition(issuerID, name, symbol string, kind CreditKind) *CreditDefinition {
	return &CreditDefinition{
		ID:        uuid.NewString(),
		IssuerID:  issuerID,
		Name:      name,
		Symbol:    symbol,
		Kind:      kind,
		Decimals:  2,
		RateToUSD: PointValueUSD,
		CreatedAt: time.Now().UTC(),
	}
}

// PlaceholderDefinition builds the self-healing stand-in for a referenced
// but missing definition, keeping the caller-supplied id.
func PlaceholderDefinition(id, issuerID string) *CreditDefinition {
	def := NewCreditDefinition(issuerID, PlaceholderAssetName, PlaceholderAssetSymbol, CreditKindLoyaltyPoint)
	def.ID = id
	return def
}

// InternalAssetDefinition builds the $VAL definition bound to the given issuer.
func InternalAssetDefinition(issuerID string) *CreditDefinition {
	def := NewCreditDefinition(issuerID, InternalAssetName, InternalAssetSymbol, CreditKindGiftCard)
	def.ID = InternalAssetID
	return def
}
