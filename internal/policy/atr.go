package policy

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/broker"
	"scalper-go/internal/model"
)

// ATRStopTarget scales the stop distance with the bar's volatility range and
// places the target at a fixed multiple of that distance. Size stays constant.
type ATRStopTarget struct {
	broker          broker.Broker
	stopMult        float64
	rewardRiskRatio float64
	size            float64

	rejections int
	logger     zerolog.Logger
}

// NewATRStopTarget builds the volatility-scaled stop/target engine.
func NewATRStopTarget(b broker.Broker, stopMult, rewardRiskRatio, size float64) *ATRStopTarget {
	return &ATRStopTarget{
		broker:          b,
		stopMult:        stopMult,
		rewardRiskRatio: rewardRiskRatio,
		size:            size,
		logger:          log.With().Str("component", "policy").Str("strategy", "atr_sltp").Logger(),
	}
}

// Name identifies the variant in reports.
func (p *ATRStopTarget) Name() string { return "ATRBased" }

// Rejections reports declined broker calls.
func (p *ATRStopTarget) Rejections() int { return p.rejections }

// OnBar enters on a signal when flat, with volatility-derived distances.
func (p *ATRStopTarget) OnBar(bar model.Bar, sig model.Signal) {
	if sig == model.SignalNone || p.broker.IsPositionOpen() {
		return
	}

	stopDistance := p.stopMult * bar.ATR
	if stopDistance <= 0 {
		return
	}
	targetDistance := stopDistance * p.rewardRiskRatio

	var err error
	switch sig {
	case model.SignalBuy:
		err = p.broker.OpenLong(bar.Close-stopDistance, bar.Close+targetDistance, p.size)
	case model.SignalSell:
		err = p.broker.OpenShort(bar.Close+stopDistance, bar.Close-targetDistance, p.size)
	}
	if err != nil {
		p.rejections++
		p.logger.Warn().Err(err).Str("signal", sig.String()).Msg("Order rejected")
	}
}
