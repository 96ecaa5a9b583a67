// internal/domain/value.go
package domain

import "github.com/shopspring/decimal"

// PointValueUSD is the fixed point-to-currency rate: one credit unit is
// worth $0.01 at redemption.
var PointValueUSD = decimal.New(1, -2)

// ExchangeRate is the fixed conversion rate from an external credit into
// the internal liquid asset: 1 unit becomes 0.01 $VAL.
var ExchangeRate = decimal.New(1, -2)

// RedemptionValue computes the real-currency cost a liquidity pool pays
// for redeeming amount units. A positive merchant discount rate scales the
// cost down: the pool pays less than face value and the merchant absorbs
// the difference.
func RedemptionValue(amount, discountRate decimal.Decimal) decimal.Decimal {
	value := amount.Mul(PointValueUSD)
	if discountRate.IsPositive() {
		value = value.Mul(decimal.NewFromInt(1).Sub(discountRate))
	}
	return value
}

// ExchangeValue computes the $VAL amount received for amount units of an
// external credit.
func ExchangeValue(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(ExchangeRate)
}
