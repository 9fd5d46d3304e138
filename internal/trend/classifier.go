// Package trend labels each bar's local price trend relative to the
// reference EMA over a lookback window.
package trend

import "scalper-go/internal/model"

// Classifier scans a lookback window behind each bar and decides whether
// price held strictly to one side of the reference line for the whole window.
type Classifier struct {
	lookback int
}

// NewClassifier builds a classifier with the given lookback (bar count
// scanned behind the current bar).
func NewClassifier(lookback int) *Classifier {
	if lookback < 1 {
		lookback = 1
	}
	return &Classifier{lookback: lookback}
}

// Lookback returns the configured window length.
func (c *Classifier) Lookback() int { return c.lookback }

// LabelAt classifies the bar at index i. Bars with insufficient history
// (i < lookback-1) are always NoTrend. The inclusive window is
// i-lookback .. i, clamped at the start of the series.
func (c *Classifier) LabelAt(bars []model.Bar, i int) model.TrendLabel {
	if i < c.lookback-1 || i >= len(bars) {
		return model.NoTrend
	}

	start := i - c.lookback
	if start < 0 {
		start = 0
	}

	uptrend, downtrend := true, true
	for j := start; j <= i; j++ {
		// A high at or above the reference line breaks the downtrend;
		// a low at or below it breaks the uptrend.
		if bars[j].High >= bars[j].EMA {
			downtrend = false
		}
		if bars[j].Low <= bars[j].EMA {
			uptrend = false
		}
		if !uptrend && !downtrend {
			break
		}
	}

	switch {
	case uptrend && downtrend:
		return model.Ambiguous
	case uptrend:
		return model.StrongUptrend
	case downtrend:
		return model.StrongDowntrend
	default:
		return model.NoTrend
	}
}

// Labels classifies every bar in the series.
func (c *Classifier) Labels(bars []model.Bar) []model.TrendLabel {
	labels := make([]model.TrendLabel, len(bars))
	for i := range bars {
		labels[i] = c.LabelAt(bars, i)
	}
	return labels
}
