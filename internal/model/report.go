package model

// StrategyReport stores the performance summary of one policy variant's replay.
type StrategyReport struct {
	Strategy      string  `json:"strategy"`
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinPercentage float64 `json:"win_percentage"`
	AverageGain   float64 `json:"average_gain"`
	AverageLoss   float64 `json:"average_loss"`
	ProfitFactor  float64 `json:"profit_factor"`
	MaxDrawdown   float64 `json:"max_drawdown"`
	SharpeRatio   float64 `json:"sharpe_ratio"`

	MaxConsecutive struct {
		Wins  int `json:"wins"`
		Loses int `json:"loses"`
	} `json:"max_consecutive"`

	EquityCurve         []float64 `json:"equity_curve,omitempty"`
	EquityGrowthPercent float64   `json:"equity_growth_percent"`
	OrderRejections     int       `json:"order_rejections"`

	Trades []Trade `json:"trades,omitempty"`
}
