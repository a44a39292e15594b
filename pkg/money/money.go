package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Prices travel through the core as integer minor units (cents). Decimal
// strings only exist at the edges: catalog seeding, request bodies, invoices.

var hundred = decimal.NewFromInt(100)

// ParsePrice converts a decimal price string like "9.99" into cents.
// More than two fractional digits is rejected rather than rounded.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid price %q: negative", s)
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid price %q: more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// FormatCents renders cents as a dollar string with two decimal places,
// e.g. 2997 -> "$29.97".
func FormatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
