package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with valid currency", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(12.34), "USD")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "12.34", m.AmountString())
	})

	t.Run("should allow negative amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(-5.00), "EUR")

		require.NoError(t, err)
		assert.Equal(t, "-5", m.AmountString())
	})

	t.Run("should reject lowercase currency code", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(1), "usd")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency")
	})

	t.Run("should reject currency code of wrong length", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(1), "US")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency")
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse bare decimal numeral", func(t *testing.T) {
		m, err := kernel.MoneyFromString("99.95", "JPY")

		require.NoError(t, err)
		assert.Equal(t, "99.95", m.AmountString())
		assert.Equal(t, "JPY", m.Currency())
	})

	t.Run("should reject non-numeric amount", func(t *testing.T) {
		_, err := kernel.MoneyFromString("twelve", "USD")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add amounts of same currency", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("10.50", "USD")
		b, _ := kernel.MoneyFromString("4.25", "USD")

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, "14.75", sum.AmountString())
	})

	t.Run("should fail for mismatched currencies", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("10.50", "USD")
		b, _ := kernel.MoneyFromString("4.25", "EUR")

		_, err := a.Add(b)

		require.Error(t, err)
		assert.Equal(t, kernel.ErrCurrencyMismatch, err)
	})

	t.Run("should fail for unconstructed operand", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("10.50", "USD")
		var b kernel.Money

		_, err := a.Add(b)

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})
}

func TestMoney_MultiplyBy(t *testing.T) {
	t.Run("should scale amount by quantity", func(t *testing.T) {
		unit, _ := kernel.MoneyFromString("19.99", "USD")

		total, err := unit.MultiplyBy(3)

		require.NoError(t, err)
		assert.Equal(t, "59.97", total.AmountString())
		assert.Equal(t, "USD", total.Currency())
	})

	t.Run("should return zero for zero quantity", func(t *testing.T) {
		unit, _ := kernel.MoneyFromString("19.99", "USD")

		total, err := unit.MultiplyBy(0)

		require.NoError(t, err)
		assert.Equal(t, "0", total.AmountString())
	})
}

func TestMoney_IsEqual(t *testing.T) {
	t.Run("should treat numerically equal amounts as equal", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("1.5", "USD")
		b, _ := kernel.MoneyFromString("1.50", "USD")

		assert.True(t, a.IsEqual(b))
	})

	t.Run("should treat different currencies as unequal", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("1.50", "USD")
		b, _ := kernel.MoneyFromString("1.50", "EUR")

		assert.False(t, a.IsEqual(b))
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})
}

func TestIsValidCurrencyCode(t *testing.T) {
	t.Run("should accept 3-letter uppercase codes", func(t *testing.T) {
		for _, code := range []string{"USD", "EUR", "JPY", "GBP"} {
			assert.True(t, kernel.IsValidCurrencyCode(code), code)
		}
	})

	t.Run("should reject malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "usd", "US", "USDT", "U$D", "12A"} {
			assert.False(t, kernel.IsValidCurrencyCode(code), code)
		}
	})
}
