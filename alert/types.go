package alert

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EventKind identifies the position lifecycle stage an alert describes.
// The string values are the wire codes carried on outbound relay payloads.
type EventKind string

const (
	KindEntry         EventKind = "ENTRY"
	KindTP1           EventKind = "TP1"
	KindTP2           EventKind = "TP2"
	KindBreakeven     EventKind = "BREAKEVEN"
	KindBreakevenStop EventKind = "BREAKEVEN_STOP"
	KindInitialStop   EventKind = "INITIAL_STOP"
	KindOther         EventKind = "OTHER"
)

// Direction is the normalized side of a position.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Display returns the single-character action label used on trade cards
// and outbound payloads (买/卖).
func (d Direction) Display() string {
	if d == Short {
		return "卖"
	}
	return "买"
}

// HeaderLabel returns the position label used in message headers (多頭/空頭).
func (d Direction) HeaderLabel() string {
	if d == Short {
		return "空頭"
	}
	return "多頭"
}

// ParseDirectionValue normalizes a raw direction string against the fixed
// per-language vocabulary. Returns false when the text matches neither side.
func ParseDirectionValue(raw string) (Direction, bool) {
	if raw == "" {
		return "", false
	}
	for _, marker := range []string{"多", "buy", "Buy"} {
		if strings.Contains(raw, marker) {
			return Long, true
		}
	}
	if raw == "买" {
		return Long, true
	}
	for _, marker := range []string{"空", "sell", "Sell"} {
		if strings.Contains(raw, marker) {
			return Short, true
		}
	}
	if raw == "卖" {
		return Short, true
	}
	return "", false
}

// Fields holds every value extractable from one alert. All fields are
// independently optional; a nil price simply means the alert did not carry
// that label. A Fields value is never mutated after extraction.
type Fields struct {
	Symbol       string
	Direction    Direction
	HasDirection bool

	Entry     *decimal.Decimal
	Stop      *decimal.Decimal
	Breakeven *decimal.Decimal
	TP1       *decimal.Decimal
	TP2       *decimal.Decimal
	Trigger   *decimal.Decimal
	Latest    *decimal.Decimal

	// Present only on entry-type alerts
	WinRate      *decimal.Decimal
	TradeCount   *decimal.Decimal
	BacktestDays *decimal.Decimal
}

// ResolvedDirection returns the extracted direction, defaulting to Long
// when the alert carried no recognizable direction label.
func (f Fields) ResolvedDirection() Direction {
	if f.HasDirection {
		return f.Direction
	}
	return Long
}
