package card

import (
	"net/url"

	"github.com/shopspring/decimal"

	"tv-alert-relay/alert"
)

// Params carries the query parameters of a card-image request. Zero
// values mean "not provided" and fall back to the renderer defaults.
type Params struct {
	Symbol    string
	Direction alert.Direction
	Entry     *decimal.Decimal
	Price     *decimal.Decimal
	Time      string
	Capital   *decimal.Decimal
}

// BuildImageURL assembles the card-image link embedded in outbound
// notifications. Only provided fields become query parameters so the
// renderer applies its own defaults for the rest.
func BuildImageURL(baseURL string, p Params) string {
	q := url.Values{}
	if p.Symbol != "" {
		q.Set("symbol", p.Symbol)
	}
	q.Set("direction", p.Direction.Display())
	if p.Entry != nil {
		q.Set("entry", p.Entry.String())
	}
	if p.Price != nil {
		q.Set("price", p.Price.String())
	}
	if p.Time != "" {
		q.Set("time", p.Time)
	}
	if p.Capital != nil {
		q.Set("capital", p.Capital.String())
	}
	return baseURL + "/api/card-image?" + q.Encode()
}
