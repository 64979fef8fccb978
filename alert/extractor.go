package alert

import (
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Label-keyed extraction patterns are compiled once per label and cached;
// the label set is small and fixed.
var (
	patternMu   sync.Mutex
	numPatterns = make(map[string]*regexp.Regexp)
	strPatterns = make(map[string]*regexp.Regexp)

	symbolCharRe = regexp.MustCompile(`[^a-zA-Z0-9.]`)
)

func numPattern(label string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := numPatterns[label]
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(label) + `\s*[:：]\s*([+-]?[0-9]+(?:\.[0-9]+)?)`)
		numPatterns[label] = re
	}
	return re
}

func strPattern(label string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := strPatterns[label]
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(label) + `\s*[:：]\s*([^,\n]+)`)
		strPatterns[label] = re
	}
	return re
}

// Num returns the first number following "label:" or "label：", or nil when
// the label is absent or its value does not parse. Plain decimals only.
func Num(text, label string) *decimal.Decimal {
	m := numPattern(label).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return nil
	}
	return &d
}

// Str returns the trimmed text following "label:" up to the next comma or
// newline, or "" when the label is absent.
func Str(text, label string) string {
	m := strPattern(label).FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Symbol extracts the trading pair from the 品种 label: the first
// space-separated token, restricted to letters, digits and dots. Venue
// suffixes such as ".P" are kept; display code strips them later.
func Symbol(text string) string {
	raw := Str(text, "品种")
	if raw == "" {
		return ""
	}
	token := strings.SplitN(raw, " ", 2)[0]
	return symbolCharRe.ReplaceAllString(token, "")
}

// ParseDirection extracts and normalizes the 方向 label.
func ParseDirection(text string) (Direction, bool) {
	return ParseDirectionValue(Str(text, "方向"))
}

// firstNum walks a label fallback chain and returns the first hit.
func firstNum(text string, labels ...string) *decimal.Decimal {
	for _, label := range labels {
		if d := Num(text, label); d != nil {
			return d
		}
	}
	return nil
}

// Extract pulls every known field out of cleaned alert text in one pass.
// Missing fields stay nil; extraction never fails.
func Extract(text string) Fields {
	f := Fields{Symbol: Symbol(text)}
	if dir, ok := ParseDirection(text); ok {
		f.Direction = dir
		f.HasDirection = true
	}

	f.Entry = Num(text, "开仓价格")
	f.Stop = Num(text, "止损价格")
	f.Breakeven = Num(text, "保本位")
	f.TP1 = firstNum(text, "TP1价格", "TP1")
	f.TP2 = firstNum(text, "TP2价格", "TP2")
	f.Trigger = firstNum(text, "触发价格", "平仓价格")
	f.Latest = firstNum(text, "最新价格", "当前价格", "市价")

	f.WinRate = Num(text, "胜率")
	f.TradeCount = Num(text, "交易次数")
	f.BacktestDays = Num(text, "回测天数")

	return f
}
