package signal

import (
	"testing"

	"scalper-go/internal/model"
	"scalper-go/internal/trend"
)

var defaultThresholds = Thresholds{Oversold: 10, Overbought: 90}

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		label    model.TrendLabel
		momentum float64
		want     model.Signal
	}{
		{"uptrend oversold", model.StrongUptrend, 5, model.SignalBuy},
		{"uptrend at threshold", model.StrongUptrend, 10, model.SignalBuy},
		{"uptrend momentum too high", model.StrongUptrend, 10.01, model.SignalNone},
		{"downtrend overbought", model.StrongDowntrend, 95, model.SignalSell},
		{"downtrend at threshold", model.StrongDowntrend, 90, model.SignalSell},
		{"downtrend momentum too low", model.StrongDowntrend, 89.99, model.SignalNone},
		{"no trend extreme momentum", model.NoTrend, 5, model.SignalNone},
		{"ambiguous never actionable", model.Ambiguous, 5, model.SignalNone},
		{"uptrend overbought", model.StrongUptrend, 95, model.SignalNone},
		{"downtrend oversold", model.StrongDowntrend, 5, model.SignalNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.label, tt.momentum, defaultThresholds); got != tt.want {
				t.Errorf("Combine(%v, %v) = %v, want %v", tt.label, tt.momentum, got, tt.want)
			}
		})
	}
}

func generateTestBars(n int, generator func(int) model.Bar) []model.Bar {
	bars := make([]model.Bar, n)
	for i := 0; i < n; i++ {
		bars[i] = generator(i)
	}
	return bars
}

func TestBuildSeries(t *testing.T) {
	// Lows hold above the line for the whole series; RSI dips to the oversold
	// threshold on bar 12 only.
	bars := generateTestBars(20, func(i int) model.Bar {
		rsi := 50.0
		if i == 12 {
			rsi = 10.0
		}
		return model.Bar{High: 1.20, Low: 1.10, Close: 1.15, EMA: 1.05, RSI: rsi, ATR: 0.01}
	})

	c := trend.NewClassifier(8)
	signals := BuildSeries(bars, c, defaultThresholds)

	if len(signals) != len(bars) {
		t.Fatalf("got %d signals, want one per bar (%d)", len(signals), len(bars))
	}
	for i, s := range signals {
		want := model.SignalNone
		if i == 12 {
			want = model.SignalBuy
		}
		if s != want {
			t.Errorf("signals[%d] = %v, want %v", i, s, want)
		}
	}
}

func TestBuildSeriesWarmupIsNone(t *testing.T) {
	bars := generateTestBars(10, func(i int) model.Bar {
		return model.Bar{High: 1.20, Low: 1.10, Close: 1.15, EMA: 1.05, RSI: 5, ATR: 0.01}
	})

	signals := BuildSeries(bars, trend.NewClassifier(8), defaultThresholds)
	for i := 0; i < 7; i++ {
		if signals[i] != model.SignalNone {
			t.Errorf("signals[%d] = %v, want None during trend warmup", i, signals[i])
		}
	}
	if signals[7] != model.SignalBuy {
		t.Errorf("signals[7] = %v, want Buy once lookback is satisfied", signals[7])
	}
}

func TestBuildSeriesDeterministic(t *testing.T) {
	bars := generateTestBars(30, func(i int) model.Bar {
		rsi := float64((i * 13) % 100)
		return model.Bar{High: 1.20, Low: 1.10, Close: 1.15, EMA: 1.05, RSI: rsi, ATR: 0.01}
	})

	c := trend.NewClassifier(8)
	first := BuildSeries(bars, c, defaultThresholds)
	second := BuildSeries(bars, c, defaultThresholds)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("series diverge at %d", i)
		}
	}
}
