package exchange

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeSymbol canonicalizes a user-supplied symbol: trimmed,
// upper-case. Returns "" for blank input.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ParsePrice parses a decimal price string and rejects non-positive
// values; a quote price must always be > 0.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrInvalidPrice, d.String())
	}
	return d, nil
}

// ParseOptional parses a decimal string into a pointer, returning nil
// when the field is absent or malformed. Used for the informational
// quote fields that must never fail a quote.
func ParseOptional(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// PercentChange computes (last-open)/open*100, nil when open is absent
// or zero.
func PercentChange(last decimal.Decimal, open string) *decimal.Decimal {
	o, err := decimal.NewFromString(open)
	if err != nil || o.IsZero() {
		return nil
	}
	change := last.Sub(o).Div(o).Mul(decimal.NewFromInt(100))
	return &change
}
