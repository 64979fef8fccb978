package card

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"tv-alert-relay/alert"
	"tv-alert-relay/config"
	"tv-alert-relay/pricing"
)

const (
	cardWidth  = 950
	cardHeight = 1300

	colorUp   = "#00aa5e"
	colorDown = "#cc3333"
)

// Beijing time, the card always shows it regardless of server locale.
var beijingZone = time.FixedZone("CST", 8*60*60)

// Renderer draws the shareable PNG trade card. A custom font file is
// required for the CJK labels; without one the built-in bold face is
// used and only latin text and digits render.
type Renderer struct {
	cfg      config.CardConfig
	fallback font.Face
}

// NewRenderer creates a card renderer from configuration.
func NewRenderer(cfg config.CardConfig) (*Renderer, error) {
	ft, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse built-in font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: 35, DPI: 72})
	if err != nil {
		return nil, fmt.Errorf("build built-in face: %w", err)
	}
	if cfg.FontPath == "" {
		log.Println("⚠️ CARD_FONT_PATH not set, trade card falls back to built-in font (no CJK glyphs)")
	}
	return &Renderer{cfg: cfg, fallback: face}, nil
}

// Render produces the 950x1300 PNG for the given parameters.
func (r *Renderer) Render(p Params) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)
	r.drawBackground(dc)

	symbol := p.Symbol
	if symbol == "" {
		symbol = "SOLUSDT.P"
	}
	displaySymbol := strings.TrimSuffix(strings.TrimSuffix(symbol, ".P"), ".p") + " 永续"
	displayDirection := p.Direction.Display()

	directionColor := colorUp
	if p.Direction == alert.Short {
		directionColor = colorDown
	}

	displayTime := p.Time
	if displayTime == "" {
		displayTime = time.Now().In(beijingZone).Format("2006-01-02 15:04:05")
	}

	capital := decimal.NewFromFloat(r.cfg.DefaultCapital)
	if p.Capital != nil {
		capital = *p.Capital
	}

	// Missing or broken inputs render as a flat card, never an error.
	displayProfit := "+0.00"
	profitNegative := false
	if p.Entry != nil && p.Price != nil {
		amount, err := pricing.ProfitAmount(*p.Entry, *p.Price, p.Direction, capital, int64(r.cfg.Leverage))
		if err == nil {
			displayProfit = pricing.FormatSignedAmount(amount)
			profitNegative = amount.Sign() < 0
		}
	}
	profitColor := colorUp
	if profitNegative {
		profitColor = colorDown
	}

	displayEntry := pricing.FormatPrice(p.Entry)
	reference := p.Price
	if reference == nil {
		reference = p.Entry
	}
	displayPrice := pricing.FormatPrice(reference)

	// Timestamp, top right
	r.setFace(dc, 33)
	dc.SetHexColor("#ffffff")
	dc.DrawString(displayTime, 505, 178)

	// Direction and symbol on one line, direction colored like the
	// profit figure
	r.setFace(dc, 47)
	dc.SetHexColor(directionColor)
	dc.DrawString(displayDirection, 50, 437)
	dirWidth, _ := dc.MeasureString(displayDirection)
	dc.SetHexColor("#ffffff")
	dc.DrawString(displaySymbol, 50+dirWidth+18, 437)

	// Leverage badge next to the pair
	r.setFace(dc, 33)
	dc.SetHexColor("#8a8f99")
	dc.DrawString(fmt.Sprintf("%dx", r.cfg.Leverage), 50, 490)

	// Profit figure, the visual anchor of the card
	r.setFace(dc, 90)
	dc.SetHexColor(profitColor)
	dc.DrawString(displayProfit, 55, 675)

	// Price block at the bottom
	r.setFace(dc, 27)
	dc.SetHexColor("#8a8f99")
	dc.DrawString("开仓价格", 60, 835)
	dc.DrawString("最新价格", 505, 835)
	r.setFace(dc, 35)
	dc.SetHexColor("#ffffff")
	dc.DrawString(displayEntry, 60, 880)
	dc.DrawString(displayPrice, 505, 880)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBackground(dc *gg.Context) {
	if r.cfg.BackgroundPath != "" {
		img, err := gg.LoadImage(r.cfg.BackgroundPath)
		if err == nil {
			bounds := img.Bounds()
			sx := float64(cardWidth) / float64(bounds.Dx())
			sy := float64(cardHeight) / float64(bounds.Dy())
			dc.Push()
			dc.Scale(sx, sy)
			dc.DrawImage(img, 0, 0)
			dc.Pop()
			return
		}
		log.Printf("❌ Failed to load card background %s: %v", r.cfg.BackgroundPath, err)
	}
	dc.SetHexColor("#0d1117")
	dc.Clear()
}

// setFace switches the drawing face to the requested size, preferring
// the configured font file.
func (r *Renderer) setFace(dc *gg.Context, points float64) {
	if r.cfg.FontPath != "" {
		if err := dc.LoadFontFace(r.cfg.FontPath, points); err == nil {
			return
		}
	}
	dc.SetFontFace(r.fallback)
}
