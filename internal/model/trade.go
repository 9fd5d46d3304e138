package model

// Direction distinguishes long from short trades.
type Direction int

const (
	Long Direction = iota
	Short
)

// String returns the direction name used in reports.
func (d Direction) String() string {
	if d == Short {
		return "SHORT"
	}
	return "LONG"
}

// Trade is one position lifecycle as recorded by the broker. The policy
// engines never own Trade values; they only issue open/close/modify commands.
type Trade struct {
	Direction  Direction `json:"direction"`
	EntryIndex int       `json:"entry_index"`
	EntryTime  string    `json:"entry_time"`
	EntryPrice float64   `json:"entry_price"`
	Stop       float64   `json:"stop"`
	Target     float64   `json:"target,omitempty"` // 0 means no take-profit
	Size       float64   `json:"size"`             // below 1: equity fraction; otherwise whole units
	Units      float64   `json:"units"`

	ExitIndex  int     `json:"exit_index,omitempty"`
	ExitTime   string  `json:"exit_time,omitempty"`
	ExitPrice  float64 `json:"exit_price,omitempty"`
	ExitReason string  `json:"exit_reason,omitempty"`
	PnL        float64 `json:"pnl"`
}
