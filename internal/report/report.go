// Package report summarizes a finished replay into per-strategy performance
// metrics and renders them for the console and for CSV export.
package report

import (
	"fmt"
	"math"
	"strings"

	"scalper-go/internal/model"
)

// Build computes the performance summary of one variant from its closed-trade
// ledger and marked equity curve.
func Build(strategy string, trades []model.Trade, curve []float64, rejections int) model.StrategyReport {
	rep := model.StrategyReport{
		Strategy:        strategy,
		TotalTrades:     len(trades),
		EquityCurve:     curve,
		OrderRejections: rejections,
		Trades:          trades,
	}

	var totalProfit, totalLoss float64
	consecutiveWins, consecutiveLosses := 0, 0
	for _, t := range trades {
		if t.PnL > 0 {
			rep.WinningTrades++
			totalProfit += t.PnL
			consecutiveWins++
			consecutiveLosses = 0
		} else if t.PnL < 0 {
			rep.LosingTrades++
			totalLoss += -t.PnL
			consecutiveLosses++
			consecutiveWins = 0
		} else {
			consecutiveWins, consecutiveLosses = 0, 0
		}
		if consecutiveWins > rep.MaxConsecutive.Wins {
			rep.MaxConsecutive.Wins = consecutiveWins
		}
		if consecutiveLosses > rep.MaxConsecutive.Loses {
			rep.MaxConsecutive.Loses = consecutiveLosses
		}
	}

	if rep.TotalTrades > 0 {
		rep.WinPercentage = float64(rep.WinningTrades) / float64(rep.TotalTrades) * 100
	}
	if rep.WinningTrades > 0 {
		rep.AverageGain = totalProfit / float64(rep.WinningTrades)
	}
	if rep.LosingTrades > 0 {
		rep.AverageLoss = totalLoss / float64(rep.LosingTrades)
	}
	if totalLoss > 0 {
		rep.ProfitFactor = totalProfit / totalLoss
	} else {
		rep.ProfitFactor = totalProfit
	}

	rep.MaxDrawdown = maxDrawdown(curve) * 100
	rep.SharpeRatio = sharpe(curve)
	if len(curve) > 0 && curve[0] > 0 {
		rep.EquityGrowthPercent = (curve[len(curve)-1] - curve[0]) / curve[0] * 100
	}
	return rep
}

// maxDrawdown returns the largest peak-to-trough decline of the curve as a
// fraction of the high-water mark.
func maxDrawdown(curve []float64) float64 {
	var highWaterMark, worst float64
	for _, v := range curve {
		if v > highWaterMark {
			highWaterMark = v
			continue
		}
		if highWaterMark > 0 {
			if dd := (highWaterMark - v) / highWaterMark; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// sharpe is the mean of the per-bar equity returns over their standard
// deviation. Zero when the curve is flat or too short.
func sharpe(curve []float64) float64 {
	if len(curve) < 3 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1] != 0 {
			returns = append(returns, curve[i]/curve[i-1]-1)
		}
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance)
}

// FormatResults renders the reports as a console summary block.
func FormatResults(reports []model.StrategyReport) string {
	var sb strings.Builder
	sb.WriteString("===== BACKTEST RESULTS =====\n")
	for _, r := range reports {
		sb.WriteString(fmt.Sprintf("\n--- %s ---\n", r.Strategy))
		sb.WriteString(fmt.Sprintf("Trades:           %d (%d won / %d lost)\n",
			r.TotalTrades, r.WinningTrades, r.LosingTrades))
		sb.WriteString(fmt.Sprintf("Win rate:         %.1f%%\n", r.WinPercentage))
		sb.WriteString(fmt.Sprintf("Avg gain/loss:    %.4f / %.4f\n", r.AverageGain, r.AverageLoss))
		sb.WriteString(fmt.Sprintf("Profit factor:    %.2f\n", r.ProfitFactor))
		sb.WriteString(fmt.Sprintf("Max drawdown:     %.1f%%\n", r.MaxDrawdown))
		sb.WriteString(fmt.Sprintf("Sharpe:           %.3f\n", r.SharpeRatio))
		sb.WriteString(fmt.Sprintf("Equity growth:    %.1f%%\n", r.EquityGrowthPercent))
		sb.WriteString(fmt.Sprintf("Max consecutive:  %d wins / %d losses\n",
			r.MaxConsecutive.Wins, r.MaxConsecutive.Loses))
		if r.OrderRejections > 0 {
			sb.WriteString(fmt.Sprintf("Order rejections: %d\n", r.OrderRejections))
		}
	}
	return sb.String()
}
