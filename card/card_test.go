package card

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"tv-alert-relay/alert"
	"tv-alert-relay/config"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return &d
}

func TestBuildImageURL(t *testing.T) {
	got := BuildImageURL("http://localhost:8080", Params{
		Symbol:    "BTCUSDT.P",
		Direction: alert.Short,
		Entry:     dec(t, "50000"),
		Price:     dec(t, "50500.123456"),
	})

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	if u.Path != "/api/card-image" {
		t.Errorf("path = %q, want /api/card-image", u.Path)
	}

	q := u.Query()
	if q.Get("symbol") != "BTCUSDT.P" {
		t.Errorf("symbol = %q", q.Get("symbol"))
	}
	if q.Get("direction") != "卖" {
		t.Errorf("direction = %q, want 卖", q.Get("direction"))
	}
	if q.Get("entry") != "50000" {
		t.Errorf("entry = %q", q.Get("entry"))
	}
	if q.Get("price") != "50500.123456" {
		t.Errorf("price = %q", q.Get("price"))
	}
}

func TestBuildImageURLOmitsMissingFields(t *testing.T) {
	got := BuildImageURL("http://localhost:8080", Params{Direction: alert.Long})

	q, err := url.Parse(got)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	values := q.Query()
	for _, key := range []string{"symbol", "entry", "price", "time", "capital"} {
		if values.Has(key) {
			t.Errorf("unexpected %s parameter in %s", key, got)
		}
	}
	if values.Get("direction") != "买" {
		t.Errorf("direction = %q, want 买", values.Get("direction"))
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(config.CardConfig{DefaultCapital: 1000, Leverage: 30})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderProducesPNG(t *testing.T) {
	r := newTestRenderer(t)

	img, err := r.Render(Params{
		Symbol:    "BTCUSDT.P",
		Direction: alert.Long,
		Entry:     dec(t, "50000"),
		Price:     dec(t, "50500"),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderMissingPricesStillSucceeds(t *testing.T) {
	r := newTestRenderer(t)

	img, err := r.Render(Params{Direction: alert.Long})
	if err != nil {
		t.Fatalf("Render without prices: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderZeroEntryStillSucceeds(t *testing.T) {
	r := newTestRenderer(t)

	// Profit falls back to +0.00 when the entry price is unusable.
	img, err := r.Render(Params{
		Direction: alert.Long,
		Entry:     dec(t, "0"),
		Price:     dec(t, "100"),
	})
	if err != nil {
		t.Fatalf("Render with zero entry: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}
