package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"scalper-go/internal/model"
)

// LoadCSV reads candlestick bars from a CSV file with columns
// time, open, high, low, close, volume (header optional). Zero-volume rows
// are dropped before the bars reach the pipeline; non-numeric price fields
// are a fatal error because the series contract is violated.
func LoadCSV(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	bars, err := ReadBars(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	log.Info().Int("bars", len(bars)).Str("file", path).Msg("Loaded candle data")
	return bars, nil
}

// ReadBars parses CSV candle rows from r, oldest first, dropping zero-volume rows.
func ReadBars(r io.Reader) ([]model.Bar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var bars []model.Bar
	zeroVolume := 0
	line := 0

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		if len(rec) < 6 {
			return nil, fmt.Errorf("line %d: expected 6 columns, got %d", line, len(rec))
		}

		// Skip a header row if present
		if line == 1 && !isNumeric(rec[1]) {
			continue
		}

		bar, err := parseBar(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if bar.Volume == 0 {
			zeroVolume++
			continue
		}
		bars = append(bars, bar)
	}

	if zeroVolume > 0 {
		log.Debug().Int("rows", zeroVolume).Msg("Dropped zero-volume rows")
	}
	return bars, nil
}

func parseBar(rec []string) (model.Bar, error) {
	open, err := parsePrice("open", rec[1])
	if err != nil {
		return model.Bar{}, err
	}
	high, err := parsePrice("high", rec[2])
	if err != nil {
		return model.Bar{}, err
	}
	low, err := parsePrice("low", rec[3])
	if err != nil {
		return model.Bar{}, err
	}
	closePrice, err := parsePrice("close", rec[4])
	if err != nil {
		return model.Bar{}, err
	}
	volume, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("parsing volume %q: %w", rec[5], err)
	}

	return model.Bar{
		Datetime: strings.TrimSpace(rec[0]),
		Open:     open,
		High:     high,
		Low:      low,
		Close:    closePrice,
		Volume:   volume,
		EMA:      math.NaN(),
		RSI:      math.NaN(),
		ATR:      math.NaN(),
	}, nil
}

func parsePrice(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", field, raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is not a finite number: %q", field, raw)
	}
	return v, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
