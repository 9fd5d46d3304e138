package policy

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/broker"
	"scalper-go/internal/model"
)

// FixedOffset places a symmetric fixed-distance stop and target around the
// entry and doubles the position size after each losing trade, resetting to
// the base size after a win.
type FixedOffset struct {
	broker   broker.Broker
	offset   float64
	baseSize float64

	size       float64
	rejections int
	logger     zerolog.Logger
}

// NewFixedOffset builds the fixed stop/target engine.
func NewFixedOffset(b broker.Broker, offset, baseSize float64) *FixedOffset {
	return &FixedOffset{
		broker:   b,
		offset:   offset,
		baseSize: baseSize,
		size:     baseSize,
		logger:   log.With().Str("component", "policy").Str("strategy", "fixed_martingale").Logger(),
	}
}

// Name identifies the variant in reports.
func (p *FixedOffset) Name() string { return "FixedSLTP_Martingale" }

// Rejections reports declined broker calls.
func (p *FixedOffset) Rejections() int { return p.rejections }

// SizeMultiplier exposes the current size for inspection.
func (p *FixedOffset) SizeMultiplier() float64 { return p.size }

// OnBar applies the sizing rule and enters on a signal when flat. A rejected
// entry discards the sizing adjustment computed for this bar.
func (p *FixedOffset) OnBar(bar model.Bar, sig model.Signal) {
	size := p.size
	if last, ok := p.broker.LastClosedTradeProfit(); ok {
		if sig != model.SignalNone && !p.broker.IsPositionOpen() && last < 0 {
			size *= 2
		} else if last > 0 {
			size = p.baseSize
		}
	}

	if !p.broker.IsPositionOpen() {
		var err error
		switch sig {
		case model.SignalBuy:
			err = p.broker.OpenLong(bar.Close-p.offset, bar.Close+p.offset, size)
		case model.SignalSell:
			err = p.broker.OpenShort(bar.Close+p.offset, bar.Close-p.offset, size)
		}
		if err != nil {
			p.rejections++
			p.logger.Warn().Err(err).Str("signal", sig.String()).Msg("Order rejected")
			return
		}
	}

	p.size = size
}
