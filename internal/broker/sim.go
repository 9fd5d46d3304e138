package broker

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/model"
)

// Exit reasons recorded on closed trades.
const (
	ExitStop   = "stop"
	ExitTarget = "target"
	ExitSignal = "signal"
	ExitEnd    = "end"
)

// Sim is a margin-account broker simulator. It fills orders at the close of
// the bar it is currently positioned on and resolves stop/target touches when
// the replay advances it to the next bar. When both the stop and the target
// are touched inside one bar, the stop wins.
type Sim struct {
	equity   float64
	leverage float64

	bar      model.Bar
	barIndex int

	open   *model.Trade
	closed []model.Trade
	curve  []float64

	logger zerolog.Logger
}

// NewSim creates a simulator with the given starting cash and leverage.
func NewSim(name string, cash, leverage float64) *Sim {
	if leverage <= 0 {
		leverage = 1
	}
	return &Sim{
		equity:   cash,
		leverage: leverage,
		curve:    []float64{cash},
		logger:   log.With().Str("component", "sim_broker").Str("strategy", name).Logger(),
	}
}

// ProcessBar advances the simulator to bar i. Stop and target touches of the
// open trade are resolved against this bar's range before any policy decision
// for the bar is taken.
func (s *Sim) ProcessBar(i int, bar model.Bar) {
	s.bar = bar
	s.barIndex = i

	if t := s.open; t != nil {
		switch t.Direction {
		case model.Long:
			if bar.Low <= t.Stop {
				s.closeAt(t.Stop, ExitStop)
			} else if t.Target > 0 && bar.High >= t.Target {
				s.closeAt(t.Target, ExitTarget)
			}
		case model.Short:
			if bar.High >= t.Stop {
				s.closeAt(t.Stop, ExitStop)
			} else if t.Target > 0 && bar.Low <= t.Target {
				s.closeAt(t.Target, ExitTarget)
			}
		}
	}

	s.curve = append(s.curve, s.equity+s.unrealized(bar.Close))
}

// IsPositionOpen reports whether a trade is currently open.
func (s *Sim) IsPositionOpen() bool { return s.open != nil }

// OpenLong opens a long at the current bar's close.
func (s *Sim) OpenLong(stop, target, size float64) error {
	return s.openTrade(model.Long, stop, target, size)
}

// OpenShort opens a short at the current bar's close.
func (s *Sim) OpenShort(stop, target, size float64) error {
	return s.openTrade(model.Short, stop, target, size)
}

func (s *Sim) openTrade(dir model.Direction, stop, target, size float64) error {
	if s.open != nil {
		return ErrTradeOpen
	}
	price := s.bar.Close
	if err := validateLevels(dir, price, stop, target); err != nil {
		return err
	}

	units, err := s.unitsFor(price, size)
	if err != nil {
		return err
	}

	s.open = &model.Trade{
		Direction:  dir,
		EntryIndex: s.barIndex,
		EntryTime:  s.bar.Datetime,
		EntryPrice: price,
		Stop:       stop,
		Target:     target,
		Size:       size,
		Units:      units,
	}
	s.logger.Debug().
		Str("direction", dir.String()).
		Float64("entry", price).
		Float64("stop", stop).
		Float64("target", target).
		Float64("units", units).
		Msg("Opened trade")
	return nil
}

// CloseOpenTrade closes the open trade at the current bar's close.
func (s *Sim) CloseOpenTrade() error {
	if s.open == nil {
		return ErrNoOpenTrade
	}
	s.closeAt(s.bar.Close, ExitSignal)
	return nil
}

// SetStopForOpenTrade replaces the stop-loss on the open trade.
func (s *Sim) SetStopForOpenTrade(newStop float64) error {
	if s.open == nil {
		return ErrNoOpenTrade
	}
	if newStop <= 0 {
		return ErrInvalidStop
	}
	s.open.Stop = newStop
	return nil
}

// LastClosedTradeProfit returns the realized PnL of the most recently closed
// trade; ok is false when no trade has closed yet.
func (s *Sim) LastClosedTradeProfit() (float64, bool) {
	if len(s.closed) == 0 {
		return 0, false
	}
	return s.closed[len(s.closed)-1].PnL, true
}

// CloseAtEnd liquidates a still-open trade at the final bar's close so the
// replay ends flat.
func (s *Sim) CloseAtEnd() {
	if s.open != nil {
		s.closeAt(s.bar.Close, ExitEnd)
	}
}

// ClosedTrades returns the ledger of closed trades in close order.
func (s *Sim) ClosedTrades() []model.Trade { return s.closed }

// EquityCurve returns the per-bar marked equity, starting cash first.
func (s *Sim) EquityCurve() []float64 { return s.curve }

// Equity returns the current realized equity.
func (s *Sim) Equity() float64 { return s.equity }

// OpenTrade returns a copy of the open trade, if any.
func (s *Sim) OpenTrade() (model.Trade, bool) {
	if s.open == nil {
		return model.Trade{}, false
	}
	return *s.open, true
}

func (s *Sim) closeAt(price float64, reason string) {
	t := *s.open
	t.ExitIndex = s.barIndex
	t.ExitTime = s.bar.Datetime
	t.ExitPrice = price
	t.ExitReason = reason
	t.PnL = t.Units * (price - t.EntryPrice)
	if t.Direction == model.Short {
		t.PnL = -t.PnL
	}

	s.equity += t.PnL
	s.closed = append(s.closed, t)
	s.open = nil

	s.logger.Debug().
		Str("reason", reason).
		Float64("exit", price).
		Float64("pnl", t.PnL).
		Msg("Closed trade")
}

// unitsFor converts an order size into units. A size below 1 is a fraction of
// current equity deployed at full leverage; 1 and above is a whole-unit count
// subject to a margin check.
func (s *Sim) unitsFor(price, size float64) (float64, error) {
	if size <= 0 || math.IsNaN(size) {
		return 0, ErrInvalidSize
	}
	if price <= 0 {
		return 0, ErrInvalidStop
	}

	var units float64
	if size < 1 {
		units = math.Floor(s.equity * size * s.leverage / price)
	} else {
		units = math.Floor(size)
	}
	if units < 1 {
		return 0, ErrInsufficient
	}
	if units*price/s.leverage > s.equity {
		return 0, ErrInsufficient
	}
	return units, nil
}

func validateLevels(dir model.Direction, price, stop, target float64) error {
	if dir == model.Long {
		if stop >= price {
			return ErrInvalidStop
		}
		if target != 0 && target <= price {
			return ErrInvalidStop
		}
		return nil
	}
	if stop <= price {
		return ErrInvalidStop
	}
	if target != 0 && target >= price {
		return ErrInvalidStop
	}
	return nil
}

func (s *Sim) unrealized(mark float64) float64 {
	if s.open == nil {
		return 0
	}
	u := s.open.Units * (mark - s.open.EntryPrice)
	if s.open.Direction == model.Short {
		u = -u
	}
	return u
}
