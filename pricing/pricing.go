// Package pricing implements profit math and display formatting for
// leveraged positions. All arithmetic runs on decimals so a malformed or
// zero entry price surfaces as an error instead of a NaN that leaks into
// outbound messages.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"tv-alert-relay/alert"
)

// ErrZeroEntryPrice is returned when a profit computation would divide by
// a zero entry price.
var ErrZeroEntryPrice = errors.New("pricing: entry price is zero")

var oneHundred = decimal.NewFromInt(100)

// ProfitAmount computes the signed leveraged P&L in capital currency:
// capital × leverage × (signedDiff / entry). Positive means the move is
// favorable to the position's direction.
func ProfitAmount(entry, reference decimal.Decimal, direction alert.Direction, capital decimal.Decimal, leverage int64) (decimal.Decimal, error) {
	if entry.IsZero() {
		return decimal.Zero, ErrZeroEntryPrice
	}

	diff := reference.Sub(entry)
	if direction == alert.Short {
		diff = entry.Sub(reference)
	}

	return capital.Mul(decimal.NewFromInt(leverage)).Mul(diff.Div(entry)), nil
}

// ProfitPercent computes the unsigned move size |reference − entry| / entry
// × 100. Informational only; it ignores leverage and direction and must not
// be confused with ProfitAmount.
func ProfitPercent(entry, reference decimal.Decimal) (decimal.Decimal, error) {
	if entry.IsZero() {
		return decimal.Zero, ErrZeroEntryPrice
	}
	return reference.Sub(entry).Abs().Div(entry).Mul(oneHundred), nil
}

// FormatPrice renders an optional numeric price for display. Precision is
// preserved as carried by the value, capped at 5 fractional digits; nil
// renders as the "-" placeholder.
func FormatPrice(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 5 {
		return d.Round(5).String()
	}
	return s
}

// FormatPriceText passes an already-formatted display string through
// unchanged apart from trimming. Upstream text carries the intended
// precision; this function never re-derives it.
func FormatPriceText(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return "-"
	}
	return t
}

// FormatSignedAmount renders a profit amount with two decimals and an
// explicit sign for non-negative values, e.g. "+3000.00".
func FormatSignedAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.Sign() >= 0 {
		return "+" + s
	}
	return s
}
