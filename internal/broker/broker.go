// Package broker defines the execution capability the policy engines drive
// and a margin-account simulator that implements it for replays.
package broker

import "errors"

// Sentinel errors returned by broker implementations. Policy engines treat
// every broker error as a rejected order: log and continue.
var (
	ErrNoOpenTrade  = errors.New("no open trade")
	ErrTradeOpen    = errors.New("a trade is already open")
	ErrInvalidSize  = errors.New("size must be positive")
	ErrInvalidStop  = errors.New("stop on the wrong side of price")
	ErrInsufficient = errors.New("insufficient funds")
)

// Broker is the execution boundary consumed by the policy engines. The
// engines never mutate position state directly; they only issue commands and
// read back trade existence and last-closed profit.
type Broker interface {
	// IsPositionOpen reports whether a trade is currently open.
	IsPositionOpen() bool
	// OpenLong opens a long at the current close. target 0 means no take-profit.
	OpenLong(stop, target, size float64) error
	// OpenShort opens a short at the current close. target 0 means no take-profit.
	OpenShort(stop, target, size float64) error
	// CloseOpenTrade closes the open trade at the current close.
	CloseOpenTrade() error
	// SetStopForOpenTrade replaces the stop-loss of the open trade.
	SetStopForOpenTrade(newStop float64) error
	// LastClosedTradeProfit returns the realized PnL of the most recently
	// closed trade; ok is false when no trade has closed yet.
	LastClosedTradeProfit() (pnl float64, ok bool)
}
