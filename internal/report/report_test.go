package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scalper-go/internal/model"
)

func trade(pnl float64) model.Trade {
	t := model.Trade{
		Direction:  model.Long,
		EntryTime:  "2024-01-01 00:00:00",
		ExitTime:   "2024-01-01 01:00:00",
		EntryPrice: 1.07,
		ExitPrice:  1.07 + pnl/100,
		Units:      100,
		ExitReason: "target",
		PnL:        pnl,
	}
	if pnl < 0 {
		t.ExitReason = "stop"
	}
	return t
}

func TestBuildWinLossStats(t *testing.T) {
	trades := []model.Trade{trade(2), trade(-1), trade(-1), trade(4), trade(-1)}
	curve := []float64{100, 102, 101, 100, 104, 103}

	rep := Build("FixedSLTP_Martingale", trades, curve, 1)

	if rep.TotalTrades != 5 || rep.WinningTrades != 2 || rep.LosingTrades != 3 {
		t.Fatalf("counts = %d/%d/%d", rep.TotalTrades, rep.WinningTrades, rep.LosingTrades)
	}
	if rep.WinPercentage != 40 {
		t.Errorf("win percentage = %v, want 40", rep.WinPercentage)
	}
	if rep.AverageGain != 3 {
		t.Errorf("average gain = %v, want 3", rep.AverageGain)
	}
	if rep.AverageLoss != 1 {
		t.Errorf("average loss = %v, want 1", rep.AverageLoss)
	}
	if rep.ProfitFactor != 2 {
		t.Errorf("profit factor = %v, want 2", rep.ProfitFactor)
	}
	if rep.MaxConsecutive.Wins != 1 || rep.MaxConsecutive.Loses != 2 {
		t.Errorf("streaks = %d/%d, want 1/2", rep.MaxConsecutive.Wins, rep.MaxConsecutive.Loses)
	}
	if rep.OrderRejections != 1 {
		t.Errorf("rejections = %d, want 1", rep.OrderRejections)
	}
	if rep.EquityGrowthPercent != 3 {
		t.Errorf("equity growth = %v, want 3", rep.EquityGrowthPercent)
	}
}

func TestBuildMaxDrawdown(t *testing.T) {
	// Peak 110, trough 99: drawdown 10%.
	curve := []float64{100, 110, 99, 105}
	rep := Build("test", nil, curve, 0)

	if got := rep.MaxDrawdown; got < 9.99 || got > 10.01 {
		t.Errorf("max drawdown = %v, want 10", got)
	}
}

func TestBuildEmptyLedger(t *testing.T) {
	rep := Build("test", nil, []float64{100, 100}, 0)
	if rep.TotalTrades != 0 || rep.WinPercentage != 0 || rep.ProfitFactor != 0 {
		t.Errorf("empty ledger produced %+v", rep)
	}
	if rep.SharpeRatio != 0 {
		t.Errorf("sharpe = %v, want 0 for a flat curve", rep.SharpeRatio)
	}
}

func TestBuildProfitFactorNoLosses(t *testing.T) {
	trades := []model.Trade{trade(2), trade(3)}
	rep := Build("test", trades, []float64{100, 102, 105}, 0)
	if rep.ProfitFactor != 5 {
		t.Errorf("profit factor = %v, want total profit when no losses", rep.ProfitFactor)
	}
}

func TestFormatResults(t *testing.T) {
	rep := Build("ATRBased", []model.Trade{trade(2), trade(-1)}, []float64{100, 102, 101}, 0)
	out := FormatResults([]model.StrategyReport{rep})

	for _, want := range []string{"ATRBased", "Win rate:", "Profit factor:", "Max drawdown:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriterFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	rep := Build("ATRBased", []model.Trade{trade(2), trade(-1)}, []float64{100, 102, 101}, 0)
	if err := w.WriteStrategy(rep); err != nil {
		t.Fatalf("WriteStrategy: %v", err)
	}
	if err := w.WriteComparison([]model.StrategyReport{rep}); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d files, want stats + trades + comparison", len(entries))
	}

	var tradesFile string
	for _, e := range entries {
		if strings.Contains(e.Name(), "_trades") {
			tradesFile = filepath.Join(dir, e.Name())
		}
	}
	f, err := os.Open(tradesFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("trades csv rows = %d, want header + 2 trades", len(rows))
	}
	if rows[1][2] != "LONG" || rows[1][9] != "target" {
		t.Errorf("trade row = %v", rows[1])
	}
}
