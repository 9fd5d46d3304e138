package trend

import (
	"testing"

	"scalper-go/internal/model"
)

func generateTestBars(n int, generator func(int) model.Bar) []model.Bar {
	bars := make([]model.Bar, n)
	for i := 0; i < n; i++ {
		bars[i] = generator(i)
	}
	return bars
}

// barsAbove builds bars whose lows stay strictly above the reference line.
func barsAbove(n int) []model.Bar {
	return generateTestBars(n, func(i int) model.Bar {
		return model.Bar{High: 1.20, Low: 1.10, Close: 1.15, EMA: 1.05}
	})
}

// barsBelow builds bars whose highs stay strictly below the reference line.
func barsBelow(n int) []model.Bar {
	return generateTestBars(n, func(i int) model.Bar {
		return model.Bar{High: 1.00, Low: 0.90, Close: 0.95, EMA: 1.05}
	})
}

func TestLabelAtWarmup(t *testing.T) {
	c := NewClassifier(8)
	bars := barsAbove(20)

	for i := 0; i < 7; i++ {
		if got := c.LabelAt(bars, i); got != model.NoTrend {
			t.Errorf("LabelAt(%d) = %v, want NoTrend during warmup", i, got)
		}
	}
	if got := c.LabelAt(bars, 7); got != model.StrongUptrend {
		t.Errorf("LabelAt(7) = %v, want StrongUptrend at first labeled bar", got)
	}
}

func TestLabelAtUptrendAndDowntrend(t *testing.T) {
	c := NewClassifier(8)

	if got := c.LabelAt(barsAbove(20), 15); got != model.StrongUptrend {
		t.Errorf("uptrend bars: LabelAt = %v, want StrongUptrend", got)
	}
	if got := c.LabelAt(barsBelow(20), 15); got != model.StrongDowntrend {
		t.Errorf("downtrend bars: LabelAt = %v, want StrongDowntrend", got)
	}
}

func TestLabelAtTouchBreaksTrend(t *testing.T) {
	c := NewClassifier(8)

	// One low touching the line exactly inside the window breaks the uptrend.
	bars := barsAbove(20)
	bars[12].Low = bars[12].EMA
	if got := c.LabelAt(bars, 15); got != model.NoTrend {
		t.Errorf("LabelAt = %v, want NoTrend after a low touched the line", got)
	}
	// Outside the window the touch is irrelevant.
	bars = barsAbove(20)
	bars[5].Low = bars[5].EMA
	if got := c.LabelAt(bars, 15); got != model.StrongUptrend {
		t.Errorf("LabelAt = %v, want StrongUptrend when the touch is out of window", got)
	}
}

// A 9-bar window where every high is above the line and one low touches the
// line exactly must classify as NoTrend: the touch breaks the uptrend flag
// and the highs break the downtrend flag, independently.
func TestLabelAtTouchScenario(t *testing.T) {
	c := NewClassifier(8)
	bars := barsAbove(9)
	bars[3].Low = bars[3].EMA

	if got := c.LabelAt(bars, 8); got != model.NoTrend {
		t.Errorf("LabelAt(8) = %v, want NoTrend", got)
	}
}

func TestLabelAtAmbiguous(t *testing.T) {
	c := NewClassifier(8)

	// Highs strictly below and lows strictly above the line cannot happen with
	// real candles, but a degenerate series must map to Ambiguous rather than
	// an actionable label.
	bars := generateTestBars(20, func(i int) model.Bar {
		return model.Bar{High: 1.00, Low: 1.10, Close: 1.05, EMA: 1.05}
	})
	if got := c.LabelAt(bars, 15); got != model.Ambiguous {
		t.Errorf("LabelAt = %v, want Ambiguous", got)
	}
}

func TestLabelsDeterministic(t *testing.T) {
	c := NewClassifier(8)
	bars := barsAbove(30)
	bars[10].Low = bars[10].EMA

	first := c.Labels(bars)
	second := c.Labels(bars)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("labels diverge at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
