// Package policy implements the per-bar order-management engines. Each
// variant owns its own mutable state and drives its own broker instance; a
// rejected order is logged and never corrupts that state.
package policy

import (
	"scalper-go/internal/model"
)

// Policy is the per-bar decision procedure of one strategy variant. OnBar is
// called once per bar, after the broker has resolved the previous bar's
// stop/target touches.
type Policy interface {
	Name() string
	OnBar(bar model.Bar, sig model.Signal)
	// Rejections reports how many broker calls were declined during replay.
	Rejections() int
}

// Config carries the order-management parameters shared by the variants.
type Config struct {
	FixedOffset     float64 // price distance for the fixed stop/target variant
	StopATRMult     float64 // ATR multiple for the volatility-scaled stop
	RewardRiskRatio float64 // target distance as a multiple of stop distance
	TrailATRMult    float64 // ATR multiple for the trailing stop distance
	BaseSize        float64 // initial position size (fraction of equity)
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() Config {
	return Config{
		FixedOffset:     45e-4,
		StopATRMult:     1.3,
		RewardRiskRatio: 1.3,
		TrailATRMult:    1.5,
		BaseSize:        0.2,
	}
}
