package alert

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "strips emoji and decorative symbols",
			raw:      "🚀 品种: BTCUSDT ⚡ 方向: 多头",
			expected: "品种: BTCUSDT 方向: 多头",
		},
		{
			name:     "strips literal unicode escapes",
			raw:      "\\u26a1 品种: ETHUSDT",
			expected: "品种: ETHUSDT",
		},
		{
			name:     "collapses whitespace",
			raw:      "品种:   BTCUSDT\n\n方向:\t空头",
			expected: "品种: BTCUSDT 方向: 空头",
		},
		{
			name:     "strips fullwidth brackets",
			raw:      "【开仓】品种: BTCUSDT",
			expected: "开仓品种: BTCUSDT",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestActionable(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"entry alert", "品种: BTCUSDT, 方向: 多头, 开仓价格: 50000", true},
		{"tp marker only", "TP1达成", true},
		{"breakeven marker", "已到保本位置", true},
		{"win rate only", "胜率: 68.5", true},
		{"unrelated text", "hello world", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Actionable(tt.text); got != tt.expected {
				t.Errorf("Actionable(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}
