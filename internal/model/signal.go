package model

// TrendLabel classifies the local price trend relative to the reference EMA.
// The integer coding matches the series consumed downstream.
type TrendLabel int

const (
	NoTrend         TrendLabel = 0
	StrongDowntrend TrendLabel = 1
	StrongUptrend   TrendLabel = 2
	// Ambiguous means both trend conditions held over the whole window.
	// Reachable but never actionable.
	Ambiguous TrendLabel = 3
)

// String returns a human-readable trend name for logs and diagnostics.
func (t TrendLabel) String() string {
	switch t {
	case StrongDowntrend:
		return "STRONG_DOWNTREND"
	case StrongUptrend:
		return "STRONG_UPTREND"
	case Ambiguous:
		return "AMBIGUOUS"
	default:
		return "NO_TREND"
	}
}

// Signal is the ternary per-bar trade decision.
// Integer coding: 0 = none, 1 = sell, 2 = buy.
type Signal int

const (
	SignalNone Signal = 0
	SignalSell Signal = 1
	SignalBuy  Signal = 2
)

// String returns a human-readable signal name.
func (s Signal) String() string {
	switch s {
	case SignalSell:
		return "SELL"
	case SignalBuy:
		return "BUY"
	default:
		return "NONE"
	}
}
