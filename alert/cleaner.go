package alert

import (
	"regexp"
	"strings"
)

var (
	// Literal \uXXXX sequences left behind by double-escaped JSON payloads
	escapeSeqRe = regexp.MustCompile(`\\u[0-9A-Fa-f]{4}`)

	// Everything outside printable ASCII, CJK ideographs and whitespace.
	// Emoji and decorative symbols land here, so they never reach the
	// extractor. Go strings are UTF-8, so no separate surrogate handling
	// is needed.
	foreignRuneRe = regexp.MustCompile(`[^\x00-\x7F\x{4e00}-\x{9fa5}\s]`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// An alert must mention at least one of these to be worth processing
	requiredKeywordRe = regexp.MustCompile(`品种|方向|开仓|止损|TP1|TP2|保本|盈利|胜率|交易次数`)
)

// Clean normalizes a raw alert into the text every later stage operates on:
// escape sequences and non-ASCII/non-CJK runes are stripped, whitespace is
// collapsed to single spaces.
func Clean(raw string) string {
	text := escapeSeqRe.ReplaceAllString(raw, "")
	text = foreignRuneRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Actionable is the cheap validity gate applied before classification.
// Blank text or text without any trading keyword is skipped, not failed.
func Actionable(cleaned string) bool {
	return cleaned != "" && requiredKeywordRe.MatchString(cleaned)
}
