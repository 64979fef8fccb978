package alert

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected EventKind
	}{
		{"tp2", "品种: BTCUSDT, TP2达成, TP2价格: 54000", KindTP2},
		{"tp1", "品种: BTCUSDT, TP1达成, TP1价格: 52000", KindTP1},
		{"breakeven", "品种: BTCUSDT, 已到保本位置, 保本位: 50500", KindBreakeven},
		{"breakeven stop", "品种: BTCUSDT, 保本止损已触发, 平仓价格: 50100", KindBreakevenStop},
		{"initial stop", "品种: BTCUSDT, 初始止损已触发, 触发价格: 49000", KindInitialStop},
		{"entry via marker", "【开仓】品种: BTCUSDT, 方向: 多头", KindEntry},
		{"entry via price label", "品种: BTCUSDT, 方向: 多头, 开仓价格: 50000", KindEntry},
		{"other", "品种: BTCUSDT, 盈利提醒", KindOther},
		{"empty", "", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

// The cascade order is load-bearing: a TP alert usually repeats the
// 开仓价格 label, which must never reclassify it as an entry.
func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected EventKind
	}{
		{"tp2 beats entry price", "TP2达成, 开仓价格: 50000, TP2价格: 54000", KindTP2},
		{"tp1 beats entry price", "TP1达成, 开仓价格: 50000", KindTP1},
		{"tp2 beats tp1", "TP2达成 TP1达成", KindTP2},
		{"breakeven beats entry price", "已到保本位置, 开仓价格: 50000", KindBreakeven},
		{"initial stop beats entry price", "初始止损已触发, 开仓价格: 50000", KindInitialStop},
		{"stop phrase needs trigger word", "保本止损设置完成", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}
