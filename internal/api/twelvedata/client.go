package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scalper-go/internal/model"
	httpclient "scalper-go/internal/platform/http"
)

// Client is the TwelveData API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new TwelveData client
type ClientOptions struct {
	APIKey          string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// timeSeriesResponse mirrors the TwelveData time_series payload.
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
		Volume   float64 `json:"volume,string,omitempty"`
	} `json:"values"`
	Status string `json:"status"`
}

// NewClient creates a new TwelveData API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpclient.ClientOptions{
		Timeout:         options.RequestTimeout,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}
	if httpOpts.Timeout == 0 {
		httpOpts.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    "https://api.twelvedata.com",
		httpClient: httpclient.NewClient(httpOpts),
		logger:     log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// GetBars fetches candle data from Twelve Data API, oldest first. Indicator
// fields start out NaN; the calculate package fills them in.
func (c *Client) GetBars(ctx context.Context, symbol, interval string, count int) ([]model.Bar, error) {
	url := fmt.Sprintf(
		"%s/time_series?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		c.baseURL,
		symbol,
		interval,
		count,
		c.apiKey,
	)

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval).Int("count", count).Msg("Fetching bars")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("Twelve Data API error: %s", string(body))
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Values) == 0 {
		return nil, fmt.Errorf("empty data returned")
	}

	// Sort bars by datetime (oldest first for proper calculations)
	sort.Slice(data.Values, func(i, j int) bool {
		return data.Values[i].Datetime < data.Values[j].Datetime
	})

	bars := make([]model.Bar, 0, len(data.Values))
	for _, v := range data.Values {
		bars = append(bars, model.Bar{
			Datetime: v.Datetime,
			Open:     v.Open,
			High:     v.High,
			Low:      v.Low,
			Close:    v.Close,
			Volume:   v.Volume,
			EMA:      math.NaN(),
			RSI:      math.NaN(),
			ATR:      math.NaN(),
		})
	}

	c.logger.Debug().Int("count", len(bars)).Msg("Fetched bars")
	return bars, nil
}

// GetHistoricalBars fetches enough candles to cover the requested number of
// months of history for the given interval.
func (c *Client) GetHistoricalBars(ctx context.Context, symbol, interval string, months int) ([]model.Bar, error) {
	return c.GetBars(ctx, symbol, interval, barsForMonths(interval, months))
}

// barsForMonths estimates how many candles cover the given number of months.
func barsForMonths(interval string, months int) int {
	perDay := 0
	switch interval {
	case "1min":
		perDay = 24 * 60
	case "5min":
		perDay = 24 * 12
	case "15min":
		perDay = 24 * 4
	case "30min":
		perDay = 24 * 2
	case "1h":
		perDay = 24
	case "4h":
		perDay = 6
	case "1day":
		perDay = 1
	default:
		perDay = 24 * 12
	}

	// 30-day months plus a 10% buffer
	return int(float64(perDay*30*months) * 1.1)
}
