package model

import "math"

// Bar represents a single price candle with its attached indicator values.
// Indicator fields are NaN while the indicator is still inside its warmup.
type Bar struct {
	Datetime string  `json:"datetime"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume,omitempty"`

	EMA float64 `json:"ema"`
	RSI float64 `json:"rsi"`
	ATR float64 `json:"atr"`
}

// HasIndicators reports whether every attached indicator value is defined.
func (b Bar) HasIndicators() bool {
	return !math.IsNaN(b.EMA) && !math.IsNaN(b.RSI) && !math.IsNaN(b.ATR)
}

// Valid reports whether all required price fields are defined numbers.
func (b Bar) Valid() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
