// internal/util/errors.go
package util

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// Common application-specific errors. Validation and not-found errors are
// caller errors; insufficient funds, policy rejection and liquidity
// insolvency are business-rule failures; ErrNoIssuer is a fatal
// configuration error that needs operator intervention.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPolicyRejected    = errors.New("policy rejected")
	ErrPoolInsolvent     = errors.New("liquidity pool insolvent")
	ErrNoIssuer          = errors.New("no issuer available to bind definition")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// PolicyRejectedError carries the rule evaluation trail for a denied
// redemption.
type PolicyRejectedError struct {
	Results []domain.RuleOutcome
}

func (e *PolicyRejectedError) Error() string {
	for _, outcome := range e.Results {
		if !outcome.Result.Passed {
			return fmt.Sprintf("policy rejected by %q: %s", outcome.PolicyName, outcome.Result.Reason)
		}
	}
	return "policy rejected"
}

func (e *PolicyRejectedError) Unwrap() error {
	return ErrPolicyRejected
}

// PoolInsolvencyError reports a liquidity pool that cannot cover a
// redemption's real-currency cost.
type PoolInsolvencyError struct {
	CreditDefID string
	Available   decimal.Decimal
	Required    decimal.Decimal
}

func (e *PoolInsolvencyError) Error() string {
	return fmt.Sprintf("liquidity failure: pool for %s has $%s, required $%s",
		e.CreditDefID, e.Available, e.Required)
}

func (e *PoolInsolvencyError) Unwrap() error {
	return ErrPoolInsolvent
}

// InsufficientFundsError identifies the wallet whose balance a debit would
// drive negative.
type InsufficientFundsError struct {
	WalletID    string
	CreditDefID string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in wallet %s: available %s, requested %s",
		e.WalletID, e.Available, e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
