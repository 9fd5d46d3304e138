package main

import (
	"testing"

	"scalper-go/internal/calculate"
	"scalper-go/internal/model"
)

func generateBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	price := 1.0700
	for i := range bars {
		bars[i] = model.Bar{
			Open:   price,
			High:   price + 0.0005,
			Low:    price - 0.0005,
			Close:  price,
			Volume: 100,
		}
		price += 0.0001
	}
	return bars
}

func TestCapWindow(t *testing.T) {
	bars := generateBars(200)

	if got := capWindow(bars, 1); len(got) != 96 {
		t.Errorf("capped length = %d, want 24*4*1", len(got))
	}
	if got := capWindow(bars, 0); len(got) != 200 {
		t.Errorf("months=0 should leave the series unbounded, got %d", len(got))
	}
	if got := capWindow(bars, 12); len(got) != 200 {
		t.Errorf("cap above series length should be a no-op, got %d", len(got))
	}
}

// The window cap counts retained bars, so the warmup drop must happen first:
// capping then filtering would shorten the replay by the warmup length.
func TestCapWindowAppliesToRetainedSeries(t *testing.T) {
	bars := generateBars(300)
	bars = calculate.AttachIndicators(bars, 20, 3, 14)
	bars = calculate.FilterWarmup(bars)

	got := capWindow(bars, 2)
	if len(got) != 24*4*2 {
		t.Fatalf("retained window = %d bars, want %d", len(got), 24*4*2)
	}
	for i, b := range got {
		if !b.HasIndicators() {
			t.Fatalf("bar %d lacks indicator values", i)
		}
	}
}
