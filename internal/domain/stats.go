// internal/domain/stats.go
package domain

import "github.com/shopspring/decimal"

// SystemStats is the platform-wide dashboard aggregate.
type SystemStats struct {
	TotalIssued      decimal.Decimal `json:"total_issued"`
	TotalRedeemed    decimal.Decimal `json:"total_redeemed"`
	TransactionCount int64           `json:"tx_count"`
	PolicyBlockCount int64           `json:"policy_block_count"`
}

// IssuerStats aggregates value movement across one issuer's definitions.
// Outstanding liability is issued minus redeemed. Expiry-based decay is not
// modeled, so the expiring figure is always zero.
type IssuerStats struct {
	TotalIssued          decimal.Decimal `json:"total_issued"`
	TotalRedeemed        decimal.Decimal `json:"total_redeemed"`
	OutstandingLiability decimal.Decimal `json:"outstanding_liability"`
	Velocity24h          int64           `json:"velocity_24h"` // BURN transactions in the last 24 hours
	ExpiringWithin30Days decimal.Decimal `json:"expiring_within_30_days"`
}
