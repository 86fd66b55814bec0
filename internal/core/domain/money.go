package domain

import (
	"fmt"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Money is a fixed-point monetary amount expressed in integer minor units
// (e.g. cents) of a single currency. All arithmetic happens on the integer
// amount; conversion to display decimals only happens at formatting
// boundaries.
type Money struct {
	Amount       int64  `json:"amount"` // minor units
	CurrencyCode string `json:"currencyCode"`
}

// NewMoney creates a Money value from an amount in minor units.
func NewMoney(amount int64, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// ZeroMoney returns the zero amount in the given currency.
func ZeroMoney(currencyCode string) Money {
	return Money{Amount: 0, CurrencyCode: currencyCode}
}

func (m Money) sameCurrency(other Money) error {
	if m.CurrencyCode != other.CurrencyCode {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.CurrencyCode, other.CurrencyCode)
	}
	return nil
}

// Add returns m + other. Fails if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, CurrencyCode: m.CurrencyCode}, nil
}

// Sub returns m - other. Fails if the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - other.Amount, CurrencyCode: m.CurrencyCode}, nil
}

// MustAdd is Add for amounts already known to share a currency.
// It panics on a currency mismatch; use only after validation.
func (m Money) MustAdd(other Money) Money {
	sum, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return sum
}

// MustSub is Sub for amounts already known to share a currency.
func (m Money) MustSub(other Money) Money {
	diff, err := m.Sub(other)
	if err != nil {
		panic(err)
	}
	return diff
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, CurrencyCode: m.CurrencyCode}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// IsNegative reports whether the amount is strictly below zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// IsPositive reports whether the amount is strictly above zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// Cmp compares m against other: -1 if m < other, 0 if equal, 1 if m > other.
// Fails if the currencies differ.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.Amount < other.Amount:
		return -1, nil
	case m.Amount > other.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// MultiplyByRate returns m scaled by ratePercent/100, rounded half-up to the
// nearest minor unit.
func (m Money) MultiplyByRate(ratePercent decimal.Decimal) Money {
	return m.MultiplyBy(ratePercent.Div(oneHundred))
}

// MultiplyBy returns m scaled by the given factor, rounded half-up to the
// nearest minor unit. The factor is a plain fraction, not a percentage.
func (m Money) MultiplyBy(factor decimal.Decimal) Money {
	scaled := decimal.NewFromInt(m.Amount).Mul(factor).Round(0)
	return Money{Amount: scaled.IntPart(), CurrencyCode: m.CurrencyCode}
}

// Split divides m into n shares. Every share receives the truncated even
// portion and the remainder is absorbed into the last share, so the shares
// always sum back to m exactly.
func (m Money) Split(n int) ([]Money, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: cannot split into %d shares", apperrors.ErrInvalidArgument, n)
	}
	share := m.Amount / int64(n)
	remainder := m.Amount - share*int64(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money{Amount: share, CurrencyCode: m.CurrencyCode}
	}
	shares[n-1].Amount += remainder
	return shares, nil
}

// Decimal converts the amount to a display decimal using the currency
// exponent (minor-unit digits, e.g. 2 for cents).
func (m Money) Decimal(exponent int32) decimal.Decimal {
	return decimal.New(m.Amount, -exponent)
}

// String renders the raw minor-unit amount with its currency code. Display
// formatting with the currency exponent belongs to the presentation layer.
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.CurrencyCode)
}
