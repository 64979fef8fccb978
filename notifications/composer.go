package notifications

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"tv-alert-relay/alert"
	"tv-alert-relay/cache"
	"tv-alert-relay/pricing"
)

var (
	commaBreakRe   = regexp.MustCompile(`,\s*`)
	literalBreakRe = regexp.MustCompile(`\\n`)
)

// Composer turns a classified alert into the channel-agnostic message body.
// It owns the single mutating step of the pipeline: entry alerts record
// their entry price in the entry cache before any downstream lookup.
type Composer struct {
	entries cache.EntryCache
}

// NewComposer creates a composer writing entry prices to the given cache.
func NewComposer(entries cache.EntryCache) *Composer {
	return &Composer{entries: entries}
}

// Compose builds the fixed per-kind message body. The cleaned alert text
// is only consulted for KindOther, which passes through untemplated.
func (c *Composer) Compose(ctx context.Context, kind alert.EventKind, f alert.Fields, cleaned string) string {
	symbol := f.Symbol
	if symbol == "" {
		symbol = "SYMBOL"
	}
	symbolLine := fmt.Sprintf("%s ｜ %s", symbol, f.ResolvedDirection().HeaderLabel())

	if kind == alert.KindEntry && f.Symbol != "" && f.Entry != nil {
		if err := c.entries.Put(ctx, f.Symbol, *f.Entry); err != nil {
			log.Printf("⚠️  Failed to cache entry price for %s: %v", f.Symbol, err)
		}
	}

	switch kind {
	case alert.KindEntry:
		return "⚡ 系統啟動\n" +
			symbolLine + "\n\n" +
			"入場：" + pricing.FormatPrice(f.Entry) + "\n" +
			"風險：" + pricing.FormatPrice(f.Stop) + "\n" +
			"保護：" + pricing.FormatPrice(f.Breakeven) + "\n\n" +
			"階段一：" + pricing.FormatPrice(f.TP1) + "\n" +
			"階段二：" + pricing.FormatPrice(f.TP2) + "\n\n" +
			"狀態：持倉"

	case alert.KindBreakeven:
		protection := f.Breakeven
		if protection == nil {
			protection = f.Trigger
		}
		return "⚡ 倉位更新\n" +
			symbolLine + "\n\n" +
			"保護位生效\n" +
			"風險轉移完成\n\n" +
			"保護：" + pricing.FormatPrice(protection) + "\n\n" +
			"狀態：已保護"

	case alert.KindTP1:
		return "⚡ 階段推進\n" +
			symbolLine + "\n\n" +
			"階段一完成\n" +
			"結構延伸中\n\n" +
			"狀態：持續持倉"

	case alert.KindTP2:
		return "⚡ 階段完成\n" +
			symbolLine + "\n\n" +
			"階段二完成\n" +
			"本輪結構結束\n\n" +
			"狀態：週期重置"

	case alert.KindBreakevenStop:
		return "⚡ 倉位關閉\n" +
			symbolLine + "\n\n" +
			"保護觸發\n" +
			"倉位平倉\n\n" +
			"風險已完全轉移\n\n" +
			"狀態：重置"

	case alert.KindInitialStop:
		return "⚡ 週期關閉\n" +
			symbolLine + "\n\n" +
			"風險觸發\n" +
			"倉位關閉\n\n" +
			"狀態：重置"
	}

	// Unknown messages pass through with a newline per comma and literal
	// \n sequences unfolded
	body := commaBreakRe.ReplaceAllString(cleaned, "\n")
	return strings.TrimSpace(literalBreakRe.ReplaceAllString(body, "\n"))
}
