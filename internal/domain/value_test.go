// internal/domain/value_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRedemptionValue(t *testing.T) {
	t.Run("FaceValue", func(t *testing.T) {
		// 250 points at $0.01 each.
		got := RedemptionValue(decimal.NewFromInt(250), decimal.Zero)
		assert.True(t, decimal.RequireFromString("2.50").Equal(got))
	})

	t.Run("MerchantDiscount", func(t *testing.T) {
		// A 10% discount scales the pool cost down to $2.25.
		got := RedemptionValue(decimal.NewFromInt(250), decimal.RequireFromString("0.1"))
		assert.True(t, decimal.RequireFromString("2.25").Equal(got))
	})

	t.Run("NegativeDiscountIgnored", func(t *testing.T) {
		got := RedemptionValue(decimal.NewFromInt(100), decimal.RequireFromString("-0.5"))
		assert.True(t, decimal.RequireFromString("1.00").Equal(got))
	})

	t.Run("FractionalAmount", func(t *testing.T) {
		got := RedemptionValue(decimal.RequireFromString("33.5"), decimal.Zero)
		assert.True(t, decimal.RequireFromString("0.335").Equal(got))
	})
}

func TestExchangeValue(t *testing.T) {
	got := ExchangeValue(decimal.NewFromInt(100))
	assert.True(t, decimal.RequireFromString("1.00").Equal(got))

	got = ExchangeValue(decimal.NewFromInt(1))
	assert.True(t, decimal.RequireFromString("0.01").Equal(got))
}

func TestPolicyParameterRoundTrip(t *testing.T) {
	maxAmount := decimal.NewFromInt(200)
	policy := NewPolicy("Cap", RuleMaxTransactionLimit, 10, PolicyParameters{MaxAmount: &maxAmount})

	params, err := policy.DecodeParameters()
	assert.NoError(t, err)
	assert.NotNil(t, params.MaxAmount)
	assert.True(t, maxAmount.Equal(*params.MaxAmount))
	assert.Empty(t, params.Countries)
}
