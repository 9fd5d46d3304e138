package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/model"
)

// Writer exports reports as CSV files into one output directory. All files of
// a run share a single timestamp suffix.
type Writer struct {
	dir    string
	stamp  string
	logger zerolog.Logger
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{
		dir:    dir,
		stamp:  time.Now().Format("20060102_150405"),
		logger: log.With().Str("component", "report").Logger(),
	}, nil
}

// WriteStrategy writes one variant's stats and trade ledger.
func (w *Writer) WriteStrategy(rep model.StrategyReport) error {
	if err := w.writeStats(rep); err != nil {
		return err
	}
	return w.writeTrades(rep)
}

func (w *Writer) writeStats(rep model.StrategyReport) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s_stats.csv", rep.Strategy, w.stamp))
	rows := [][]string{
		{"metric", "value"},
		{"total_trades", strconv.Itoa(rep.TotalTrades)},
		{"winning_trades", strconv.Itoa(rep.WinningTrades)},
		{"losing_trades", strconv.Itoa(rep.LosingTrades)},
		{"win_percentage", formatFloat(rep.WinPercentage)},
		{"average_gain", formatFloat(rep.AverageGain)},
		{"average_loss", formatFloat(rep.AverageLoss)},
		{"profit_factor", formatFloat(rep.ProfitFactor)},
		{"max_drawdown_pct", formatFloat(rep.MaxDrawdown)},
		{"sharpe_ratio", formatFloat(rep.SharpeRatio)},
		{"equity_growth_pct", formatFloat(rep.EquityGrowthPercent)},
		{"max_consecutive_wins", strconv.Itoa(rep.MaxConsecutive.Wins)},
		{"max_consecutive_losses", strconv.Itoa(rep.MaxConsecutive.Loses)},
		{"order_rejections", strconv.Itoa(rep.OrderRejections)},
	}
	return w.writeCSV(path, rows)
}

func (w *Writer) writeTrades(rep model.StrategyReport) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s_trades.csv", rep.Strategy, w.stamp))
	rows := [][]string{{
		"entry_time", "exit_time", "direction", "entry_price", "exit_price",
		"stop", "target", "size", "units", "exit_reason", "pnl",
	}}
	for _, t := range rep.Trades {
		rows = append(rows, []string{
			t.EntryTime,
			t.ExitTime,
			t.Direction.String(),
			formatFloat(t.EntryPrice),
			formatFloat(t.ExitPrice),
			formatFloat(t.Stop),
			formatFloat(t.Target),
			formatFloat(t.Size),
			formatFloat(t.Units),
			t.ExitReason,
			formatFloat(t.PnL),
		})
	}
	return w.writeCSV(path, rows)
}

// WriteComparison writes one row per variant so the runs can be compared
// side by side.
func (w *Writer) WriteComparison(reports []model.StrategyReport) error {
	path := filepath.Join(w.dir, fmt.Sprintf("comparison_%s.csv", w.stamp))
	rows := [][]string{{
		"strategy", "total_trades", "win_percentage", "profit_factor",
		"max_drawdown_pct", "sharpe_ratio", "equity_growth_pct", "order_rejections",
	}}
	for _, r := range reports {
		rows = append(rows, []string{
			r.Strategy,
			strconv.Itoa(r.TotalTrades),
			formatFloat(r.WinPercentage),
			formatFloat(r.ProfitFactor),
			formatFloat(r.MaxDrawdown),
			formatFloat(r.SharpeRatio),
			formatFloat(r.EquityGrowthPercent),
			strconv.Itoa(r.OrderRejections),
		})
	}
	return w.writeCSV(path, rows)
}

func (w *Writer) writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.logger.Info().Str("file", path).Int("rows", len(rows)-1).Msg("Report written")
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
