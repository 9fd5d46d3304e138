package calculate

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"scalper-go/internal/model"
)

// AttachIndicators computes the reference EMA, the momentum RSI, and the ATR
// volatility range over the bar series and writes the values onto each bar.
// Values inside an indicator's warmup stay NaN.
func AttachIndicators(bars []model.Bar, emaPeriod, rsiPeriod, atrPeriod int) []model.Bar {
	n := len(bars)
	if n == 0 {
		return bars
	}

	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	ema := seriesOrNil(n >= emaPeriod, func() []float64 { return talib.Ema(closes, emaPeriod) })
	rsi := seriesOrNil(n > rsiPeriod, func() []float64 { return talib.Rsi(closes, rsiPeriod) })
	atr := seriesOrNil(n > atrPeriod, func() []float64 { return talib.Atr(highs, lows, closes, atrPeriod) })

	out := make([]model.Bar, n)
	copy(out, bars)
	for i := range out {
		out[i].EMA = valueAt(ema, i, emaPeriod-1)
		out[i].RSI = valueAt(rsi, i, rsiPeriod)
		out[i].ATR = valueAt(atr, i, atrPeriod)
	}
	return out
}

// FilterWarmup drops leading bars whose indicators are still undefined so the
// retained series is contiguous and renumbered from zero.
func FilterWarmup(bars []model.Bar) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	for _, b := range bars {
		if b.HasIndicators() {
			out = append(out, b)
		}
	}
	return out
}

// seriesOrNil avoids calling talib with fewer bars than the lookback needs.
func seriesOrNil(enough bool, compute func() []float64) []float64 {
	if !enough {
		return nil
	}
	return compute()
}

// valueAt returns the indicator value at i, or NaN while i is inside the
// warmup region (talib fills that region with zeros, which would otherwise be
// indistinguishable from real values).
func valueAt(series []float64, i, firstValid int) float64 {
	if series == nil || i < firstValid {
		return math.NaN()
	}
	return series[i]
}
