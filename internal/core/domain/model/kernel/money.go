package kernel

import (
	"fmt"
	"regexp"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created through
// one of the constructor functions. The zero value of Money is invalid.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or MoneyFromString",
)

// ErrCurrencyMismatch is returned when arithmetic is attempted across two Money
// values carrying different currency codes.
var ErrCurrencyMismatch = errs.NewValueIsInvalidError("currencies do not match")

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is a value object pairing a decimal amount with a 3-letter uppercase
// currency code. Monetary fields are never represented as bare numbers in the
// domain model; every amount travels with its currency.
//
// Money is immutable: arithmetic methods return new values. The zero value is
// invalid and must be constructed via NewMoney or MoneyFromString.
//
// Example:
//
//	subtotal, _ := kernel.MoneyFromString("89.90", "USD")
//	tax, _ := kernel.MoneyFromString("7.19", "USD")
//	total, err := subtotal.Add(tax)
//	if err != nil {
//	    // currencies did not match
//	}
//	fmt.Println(total.AmountString()) // "97.09"
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount and a currency code.
// The currency must be a 3-letter uppercase code. Negative amounts are allowed
// (refunds and corrections are legitimate domain values).
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !currencyCodePattern.MatchString(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a 3-letter uppercase currency code", currency),
		)
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a bare decimal numeral (for example "12.34") and a
// currency code into a Money value. This is the entry point for amounts read
// from tabular interchange formats.
func MoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// Zero returns a zero-amount Money in the given currency.
func Zero(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the 3-letter uppercase currency code.
func (m Money) Currency() string {
	return m.currency
}

// AmountString returns the amount as a bare decimal numeral without a currency
// symbol, suitable for a tabular cell paired with a separate currency column.
func (m Money) AmountString() string {
	return m.amount.String()
}

// String renders the amount followed by its currency code, e.g. "12.34 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

// Add returns the sum of two Money values. Both operands must carry the same
// currency code; mixing currencies is a domain error, never an implicit conversion.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}

	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// MultiplyBy returns the Money scaled by an integer quantity, preserving the currency.
func (m Money) MultiplyBy(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))), m.currency)
}

// IsEqual reports whether two Money values have the same currency and
// numerically equal amounts ("1.5" equals "1.50").
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Validate checks that the Money value was properly constructed.
// Returns ErrMoneyIsNotConstructed for zero values.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// IsValidCurrencyCode reports whether s is a 3-letter uppercase currency code.
// This is the shape check used when admitting untrusted tabular input.
func IsValidCurrencyCode(s string) bool {
	return currencyCodePattern.MatchString(s)
}
