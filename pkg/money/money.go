// Package money provides functionality for handling monetary values.
//
// It is a value object that represents a decimal amount in a specific currency.
// Invariants:
//   - Amount is an exact decimal; no float rounding happens on arithmetic.
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - Display always uses DisplayDecimals fractional digits.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayDecimals is the number of fractional digits used when formatting.
const DisplayDecimals = 2

// IsValid checks if the currency code is three uppercase ASCII letters.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// ParseCode normalizes user input (trims space, upper-cases) into a Code.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

// ParseAmount parses user-entered amount text.
// Invariants enforced:
//   - Text must be a decimal number (surrounding whitespace is ignored).
//   - The value must be finite when represented as float64.
//   - The value must not be negative.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("%w: %q is not finite", ErrInvalidAmount, text)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNegativeAmount, text)
	}
	return d, nil
}

// Money represents a decimal amount in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency Code
}

// New creates a Money value object.
// Returns an error if the currency code is malformed.
func New(amount decimal.Decimal, currency Code) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

// Must is like New but panics on an invalid currency.
func Must(amount decimal.Decimal, currency Code) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v, %v): %v", amount, currency, err))
	}
	return m
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Code {
	return m.currency
}

// Convert multiplies the amount by rate and re-denominates it in target.
func (m Money) Convert(rate decimal.Decimal, target Code) (Money, error) {
	return New(m.amount.Mul(rate), target)
}

// Formatted returns the amount rounded to DisplayDecimals, without currency.
func (m Money) Formatted() string {
	return m.amount.StringFixed(DisplayDecimals)
}

// String returns e.g. "92.00 EUR".
func (m Money) String() string {
	return m.Formatted() + " " + string(m.currency)
}

// MarshalJSON implements json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":    m.amount.String(),
		"currency":  m.currency,
		"formatted": m.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parsed, err := New(aux.Amount, Code(aux.Currency))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
