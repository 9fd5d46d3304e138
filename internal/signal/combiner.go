// Package signal merges the trend label with the momentum extreme reading
// into one ternary trade signal per bar.
package signal

import (
	"github.com/rs/zerolog/log"

	"scalper-go/internal/model"
	"scalper-go/internal/trend"
)

// Thresholds holds the momentum extremes that qualify a trend for entry.
type Thresholds struct {
	Oversold   float64
	Overbought float64
}

// Combine merges one bar's trend label with its momentum value.
// Both threshold comparisons are inclusive. Ambiguous and NoTrend labels are
// never actionable, so the two branches are structurally exclusive.
func Combine(label model.TrendLabel, momentum float64, th Thresholds) model.Signal {
	if label == model.StrongDowntrend && momentum >= th.Overbought {
		return model.SignalSell
	}
	if label == model.StrongUptrend && momentum <= th.Oversold {
		return model.SignalBuy
	}
	return model.SignalNone
}

// BuildSeries derives one signal per retained bar. Bars must already have all
// indicator values defined (warmup rows dropped and renumbered upstream).
func BuildSeries(bars []model.Bar, classifier *trend.Classifier, th Thresholds) []model.Signal {
	labels := classifier.Labels(bars)

	signals := make([]model.Signal, len(bars))
	buys, sells, ambiguous := 0, 0, 0
	for i := range bars {
		if labels[i] == model.Ambiguous {
			ambiguous++
		}
		signals[i] = Combine(labels[i], bars[i].RSI, th)
		switch signals[i] {
		case model.SignalBuy:
			buys++
		case model.SignalSell:
			sells++
		}
	}

	ev := log.Info().Int("bars", len(bars)).Int("buy", buys).Int("sell", sells)
	if ambiguous > 0 {
		ev = ev.Int("ambiguous_trend", ambiguous)
	}
	ev.Msg("Signal series generated")

	return signals
}
