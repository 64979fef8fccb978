package alert

import "regexp"

var (
	tp2Re           = regexp.MustCompile(`TP2达成`)
	tp1Re           = regexp.MustCompile(`TP1达成`)
	breakevenRe     = regexp.MustCompile(`已到保本位置`)
	breakevenStopRe = regexp.MustCompile(`保本止损.*触发`)
	initialStopRe   = regexp.MustCompile(`初始止损.*触发`)
	entryMarkerRe   = regexp.MustCompile(`【开仓】`)
	entryPriceRe    = regexp.MustCompile(`开仓价格`)
)

type rule struct {
	kind  EventKind
	match func(string) bool
}

// Classification is a priority cascade: several marker phrases are
// substrings of other kinds' text (开仓价格 appears in stop and TP alerts
// too), so the rule order below is load-bearing. First hit wins.
var rules = []rule{
	{KindTP2, tp2Re.MatchString},
	{KindTP1, tp1Re.MatchString},
	{KindBreakeven, breakevenRe.MatchString},
	{KindBreakevenStop, breakevenStopRe.MatchString},
	{KindInitialStop, initialStopRe.MatchString},
	{KindEntry, isEntry},
}

// isEntry matches the explicit open marker or the entry-price label.
// The cleaner strips the 【】 brackets, so cleaned text normally rides the
// 开仓价格 branch; the marker branch covers classification of raw text.
func isEntry(text string) bool {
	return entryMarkerRe.MatchString(text) || entryPriceRe.MatchString(text)
}

// Classify assigns exactly one EventKind to cleaned alert text.
func Classify(text string) EventKind {
	for _, r := range rules {
		if r.match(text) {
			return r.kind
		}
	}
	return KindOther
}
