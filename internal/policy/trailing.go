package policy

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/broker"
	"scalper-go/internal/model"
)

// ATRTrailing manages positions with a volatility-scaled trailing stop and no
// take-profit. The stop only ever tightens; an opposite signal closes the
// trade immediately. The currently active stop price is policy state, not
// broker state, because the broker contract exposes no stop readback.
type ATRTrailing struct {
	broker    broker.Broker
	trailMult float64
	size      float64

	direction  model.Direction
	activeStop float64

	rejections int
	logger     zerolog.Logger
}

// NewATRTrailing builds the trailing-stop engine.
func NewATRTrailing(b broker.Broker, trailMult, size float64) *ATRTrailing {
	return &ATRTrailing{
		broker:    b,
		trailMult: trailMult,
		size:      size,
		logger:    log.With().Str("component", "policy").Str("strategy", "atr_trailing").Logger(),
	}
}

// Name identifies the variant in reports.
func (p *ATRTrailing) Name() string { return "TrailingStop_ATR" }

// Rejections reports declined broker calls.
func (p *ATRTrailing) Rejections() int { return p.rejections }

// ActiveStop exposes the currently tracked stop for inspection.
func (p *ATRTrailing) ActiveStop() float64 { return p.activeStop }

// OnBar first manages the open trade (tighten stop, exit on opposite signal),
// then enters on a signal if flat.
func (p *ATRTrailing) OnBar(bar model.Bar, sig model.Signal) {
	trail := p.trailMult * bar.ATR
	if trail <= 0 {
		return
	}

	if p.broker.IsPositionOpen() {
		p.manageOpenTrade(bar, sig, trail)
	}

	if p.broker.IsPositionOpen() {
		return
	}

	var err error
	switch sig {
	case model.SignalBuy:
		if err = p.broker.OpenLong(bar.Close-trail, 0, p.size); err == nil {
			p.direction = model.Long
			p.activeStop = bar.Close - trail
		}
	case model.SignalSell:
		if err = p.broker.OpenShort(bar.Close+trail, 0, p.size); err == nil {
			p.direction = model.Short
			p.activeStop = bar.Close + trail
		}
	}
	if err != nil {
		p.rejections++
		p.logger.Warn().Err(err).Str("signal", sig.String()).Msg("Order rejected")
	}
}

func (p *ATRTrailing) manageOpenTrade(bar model.Bar, sig model.Signal, trail float64) {
	if p.direction == model.Long {
		// The stop may only tighten upward.
		if newStop := math.Max(p.activeStop, bar.Close-trail); newStop > p.activeStop {
			if err := p.broker.SetStopForOpenTrade(newStop); err != nil {
				p.rejections++
				p.logger.Warn().Err(err).Msg("Stop update rejected")
			} else {
				p.activeStop = newStop
			}
		}
		if sig == model.SignalSell {
			p.closeOnFlip()
		}
		return
	}

	// Short: the stop may only tighten downward.
	if newStop := math.Min(p.activeStop, bar.Close+trail); newStop < p.activeStop {
		if err := p.broker.SetStopForOpenTrade(newStop); err != nil {
			p.rejections++
			p.logger.Warn().Err(err).Msg("Stop update rejected")
		} else {
			p.activeStop = newStop
		}
	}
	if sig == model.SignalBuy {
		p.closeOnFlip()
	}
}

func (p *ATRTrailing) closeOnFlip() {
	if err := p.broker.CloseOpenTrade(); err != nil {
		p.rejections++
		p.logger.Warn().Err(err).Msg("Close rejected")
	}
}
