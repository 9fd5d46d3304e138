package data

import (
	"strings"
	"testing"
)

func TestReadBars(t *testing.T) {
	in := strings.Join([]string{
		"Local time,Open,High,Low,Close,Volume",
		"01.01.2023 00:00:00,1.07000,1.07100,1.06900,1.07050,352.4",
		"01.01.2023 00:05:00,1.07050,1.07150,1.06950,1.07100,0",
		"01.01.2023 00:10:00,1.07100,1.07200,1.07000,1.07150,410.0",
	}, "\n")

	bars, err := ReadBars(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadBars() error = %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (zero-volume row dropped)", len(bars))
	}
	if bars[0].Close != 1.07050 {
		t.Errorf("bars[0].Close = %v, want 1.07050", bars[0].Close)
	}
	if bars[1].Datetime != "01.01.2023 00:10:00" {
		t.Errorf("bars[1].Datetime = %q", bars[1].Datetime)
	}
}

func TestReadBarsNoHeader(t *testing.T) {
	in := "01.01.2023 00:00:00,1.1,1.2,1.0,1.15,5\n"
	bars, err := ReadBars(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadBars() error = %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(bars))
	}
}

func TestReadBarsIndicatorsStartUndefined(t *testing.T) {
	in := "01.01.2023 00:00:00,1.1,1.2,1.0,1.15,5\n"
	bars, err := ReadBars(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadBars() error = %v", err)
	}
	if bars[0].HasIndicators() {
		t.Error("freshly parsed bar should have undefined indicator values")
	}
}

func TestReadBarsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad price", "01.01.2023,1.1,oops,1.0,1.15,5\n"},
		{"bad volume", "01.01.2023,1.1,1.2,1.0,1.15,xyz\n"},
		{"short row", "01.01.2023,1.1,1.2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadBars(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
