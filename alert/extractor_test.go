package alert

import (
	"testing"

	"github.com/shopspring/decimal"
)

const sampleEntryAlert = "开仓品种: BTCUSDT.P BINANCE, 方向: 多头, 开仓价格: 50000.5, 止损价格: 49000, 保本位: 50500, TP1: 52000, TP2: 54000, 胜率: 68.5, 交易次数: 120, 回测天数: 90"

func TestNum(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		label    string
		expected string // "" means nil
	}{
		{"ascii colon", "开仓价格: 50000.5", "开仓价格", "50000.5"},
		{"cjk colon", "开仓价格： 50000.5", "开仓价格", "50000.5"},
		{"no space after colon", "止损价格:49000", "止损价格", "49000"},
		{"integer value", "TP1: 52000", "TP1", "52000"},
		{"negative value", "盈利: -12.5", "盈利", "-12.5"},
		{"label absent", "方向: 多头", "开仓价格", ""},
		{"label without number", "开仓价格: 未知", "开仓价格", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Num(tt.text, tt.label)
			if tt.expected == "" {
				if got != nil {
					t.Errorf("Num(%q, %q) = %s, want nil", tt.text, tt.label, got)
				}
				return
			}
			want := decimal.RequireFromString(tt.expected)
			if got == nil || !got.Equal(want) {
				t.Errorf("Num(%q, %q) = %v, want %s", tt.text, tt.label, got, want)
			}
		})
	}
}

func TestStr(t *testing.T) {
	text := "品种: BTCUSDT.P BINANCE, 方向: 多头"
	if got := Str(text, "品种"); got != "BTCUSDT.P BINANCE" {
		t.Errorf("Str(品种) = %q, want %q", got, "BTCUSDT.P BINANCE")
	}
	if got := Str(text, "方向"); got != "多头" {
		t.Errorf("Str(方向) = %q, want %q", got, "多头")
	}
	if got := Str(text, "止损价格"); got != "" {
		t.Errorf("Str(止损价格) = %q, want empty", got)
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"venue after space", "品种: BTCUSDT.P BINANCE", "BTCUSDT.P"},
		{"bare ticker", "品种: SOLUSDT", "SOLUSDT"},
		{"decorations stripped", "品种: ETH-USDT!", "ETHUSDT"},
		{"absent", "方向: 多头", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Symbol(tt.text); got != tt.expected {
				t.Errorf("Symbol(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestParseDirectionValue(t *testing.T) {
	longs := []string{"多", "多头", "多頭", "buy", "Buy", "买"}
	for _, v := range longs {
		if d, ok := ParseDirectionValue(v); !ok || d != Long {
			t.Errorf("ParseDirectionValue(%q) = (%v, %v), want Long", v, d, ok)
		}
	}

	shorts := []string{"空", "空头", "空頭", "sell", "Sell", "卖"}
	for _, v := range shorts {
		if d, ok := ParseDirectionValue(v); !ok || d != Short {
			t.Errorf("ParseDirectionValue(%q) = (%v, %v), want Short", v, d, ok)
		}
	}

	if _, ok := ParseDirectionValue("sideways"); ok {
		t.Error("ParseDirectionValue(sideways) should not match")
	}
	if _, ok := ParseDirectionValue(""); ok {
		t.Error("ParseDirectionValue(empty) should not match")
	}
}

func TestExtract(t *testing.T) {
	f := Extract(sampleEntryAlert)

	if f.Symbol != "BTCUSDT.P" {
		t.Errorf("Symbol = %q, want BTCUSDT.P", f.Symbol)
	}
	if !f.HasDirection || f.Direction != Long {
		t.Errorf("Direction = (%v, %v), want Long", f.Direction, f.HasDirection)
	}

	checks := []struct {
		name     string
		got      *decimal.Decimal
		expected string
	}{
		{"Entry", f.Entry, "50000.5"},
		{"Stop", f.Stop, "49000"},
		{"Breakeven", f.Breakeven, "50500"},
		{"TP1", f.TP1, "52000"},
		{"TP2", f.TP2, "54000"},
		{"WinRate", f.WinRate, "68.5"},
		{"TradeCount", f.TradeCount, "120"},
		{"BacktestDays", f.BacktestDays, "90"},
	}
	for _, c := range checks {
		if c.got == nil || !c.got.Equal(decimal.RequireFromString(c.expected)) {
			t.Errorf("%s = %v, want %s", c.name, c.got, c.expected)
		}
	}

	if f.Trigger != nil {
		t.Errorf("Trigger = %v, want nil on entry alert", f.Trigger)
	}
}

func TestExtractFallbackChains(t *testing.T) {
	// 平仓价格 backs up 触发价格
	f := Extract("品种: BTCUSDT, 保本止损已触发, 平仓价格: 50100")
	if f.Trigger == nil || !f.Trigger.Equal(decimal.NewFromInt(50100)) {
		t.Errorf("Trigger = %v, want 50100 via 平仓价格 fallback", f.Trigger)
	}

	// 当前价格 and 市价 back up 最新价格
	f = Extract("品种: BTCUSDT, 市价: 50200")
	if f.Latest == nil || !f.Latest.Equal(decimal.NewFromInt(50200)) {
		t.Errorf("Latest = %v, want 50200 via 市价 fallback", f.Latest)
	}

	// TP1价格 takes precedence over bare TP1
	f = Extract("TP1达成, TP1价格: 52500, TP1: 52000")
	if f.TP1 == nil || !f.TP1.Equal(decimal.NewFromInt(52500)) {
		t.Errorf("TP1 = %v, want 52500 via TP1价格", f.TP1)
	}
}

func TestResolvedDirectionDefault(t *testing.T) {
	f := Extract("品种: BTCUSDT, 开仓价格: 50000")
	if f.HasDirection {
		t.Fatal("expected no direction extracted")
	}
	if f.ResolvedDirection() != Long {
		t.Errorf("ResolvedDirection = %v, want Long default", f.ResolvedDirection())
	}
}
