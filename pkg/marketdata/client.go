// Package marketdata wraps the Alpha Vantage REST API behind a normalized,
// cached client. The free tier allows 5 requests/minute and 500/day, so
// every lookup goes through the TTL cache and a rate limiter; the client
// never retries (retrying a rate-limited call only deepens the hole).
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"resty.dev/v3"

	"github.com/tickerwise/tickerwise/pkg/cache"
)

const (
	// DefaultBaseURL is the Alpha Vantage query endpoint.
	DefaultBaseURL = "https://www.alphavantage.co/query"

	// requestTimeout bounds a single provider call.
	requestTimeout = 10 * time.Second

	// Free tier: 5 requests per minute = 1 request every 12 seconds.
	requestsPerSecond = 1.0 / 12.0
)

// Intervals supported by TIME_SERIES_INTRADAY.
var validIntervals = map[string]bool{
	"1min":  true,
	"5min":  true,
	"15min": true,
	"30min": true,
	"60min": true,
}

// Client fetches quotes and intraday series from Alpha Vantage.
type Client struct {
	apiKey  string
	client  *resty.Client
	cache   *cache.Cache
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Config holds configuration for the market data client.
type Config struct {
	// APIKey is the Alpha Vantage API key. Required.
	APIKey string

	// BaseURL overrides the query endpoint (e.g., for tests).
	BaseURL string

	// RatePerMinute overrides the free tier's 5 requests/minute budget.
	// Tests raise it so they don't sit behind the limiter.
	RatePerMinute float64
}

// NewClient creates a market data client. The cache is injected so it can
// be shared read-mostly across sessions.
func NewClient(cfg Config, dataCache *cache.Cache, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("alphavantage API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	limit := rate.Limit(requestsPerSecond)
	if cfg.RatePerMinute > 0 {
		limit = rate.Limit(cfg.RatePerMinute / 60.0)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(requestTimeout)

	return &Client{
		apiKey:  cfg.APIKey,
		client:  client,
		cache:   dataCache,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// GetQuote returns the current quote for symbol, serving from cache when a
// fresh entry exists.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := symbol + "|quote"

	v, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.fetchQuote(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Quote), nil
}

// GetIntraday returns intraday bars for symbol at the given interval,
// most recent first. interval must be one of 1min, 5min, 15min, 30min,
// 60min.
func (c *Client) GetIntraday(ctx context.Context, symbol, interval string) ([]Bar, error) {
	if !validIntervals[interval] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := symbol + "|" + interval

	v, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.fetchIntraday(ctx, symbol, interval)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Bar), nil
}

func (c *Client) fetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	var result globalQuoteResponse

	if err := c.doRequest(ctx, map[string]string{
		"function": "GLOBAL_QUOTE",
		"symbol":   symbol,
	}, &result); err != nil {
		return nil, err
	}

	if err := providerFailure(result.Note, result.Information, result.ErrorMessage); err != nil {
		return nil, err
	}

	gq := result.GlobalQuote
	if gq.Price == "" {
		return nil, fmt.Errorf("%w: no quote data for %s", ErrUnknownSymbol, symbol)
	}

	price, err := strconv.ParseFloat(gq.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing price %q: %v", ErrProvider, gq.Price, err)
	}

	// Change fields are best-effort; a quote with only a price is still usable.
	change, _ := strconv.ParseFloat(gq.Change, 64)
	changePercent, _ := strconv.ParseFloat(strings.TrimSuffix(gq.ChangePercent, "%"), 64)

	asOf, err := time.Parse("2006-01-02", gq.LatestTradingDay)
	if err != nil {
		asOf = time.Time{}
	}

	quote := &Quote{
		Symbol:        gq.Symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		AsOf:          asOf,
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}

	c.logger.Debug("fetched quote",
		zap.String("symbol", quote.Symbol),
		zap.Float64("price", quote.Price),
	)

	return quote, nil
}

func (c *Client) fetchIntraday(ctx context.Context, symbol, interval string) ([]Bar, error) {
	// The time series arrives keyed by timestamp under a key that embeds
	// the interval, so decode into raw JSON first.
	var raw map[string]json.RawMessage

	if err := c.doRequest(ctx, map[string]string{
		"function": "TIME_SERIES_INTRADAY",
		"symbol":   symbol,
		"interval": interval,
	}, &raw); err != nil {
		return nil, err
	}

	var note, info, errMsg string
	if v, ok := raw["Note"]; ok {
		json.Unmarshal(v, &note)
	}
	if v, ok := raw["Information"]; ok {
		json.Unmarshal(v, &info)
	}
	if v, ok := raw["Error Message"]; ok {
		json.Unmarshal(v, &errMsg)
	}
	if err := providerFailure(note, info, errMsg); err != nil {
		return nil, err
	}

	seriesKey := fmt.Sprintf("Time Series (%s)", interval)
	seriesRaw, ok := raw[seriesKey]
	if !ok {
		return nil, fmt.Errorf("%w: no intraday data for %s", ErrUnknownSymbol, symbol)
	}

	var series map[string]intradayBar
	if err := json.Unmarshal(seriesRaw, &series); err != nil {
		return nil, fmt.Errorf("%w: decoding time series: %v", ErrProvider, err)
	}

	// Map iteration order is random; sort timestamps descending so the
	// latest bar comes first.
	stamps := make([]string, 0, len(series))
	for ts := range series {
		stamps = append(stamps, ts)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))

	bars := make([]Bar, 0, len(stamps))
	for _, ts := range stamps {
		entry := series[ts]
		bar := Bar{
			Open:  parseFloat(entry.Open),
			High:  parseFloat(entry.High),
			Low:   parseFloat(entry.Low),
			Close: parseFloat(entry.Close),
		}
		bar.Volume, _ = strconv.ParseInt(entry.Volume, 10, 64)
		bar.Time, _ = time.Parse("2006-01-02 15:04:05", ts)
		bars = append(bars, bar)
	}

	c.logger.Debug("fetched intraday series",
		zap.String("symbol", symbol),
		zap.String("interval", interval),
		zap.Int("bars", len(bars)),
	)

	return bars, nil
}

// doRequest waits for rate-limiter clearance, issues one GET, and decodes
// the body into out. One attempt only.
func (c *Client) doRequest(ctx context.Context, params map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrNetwork, err)
	}

	params["apikey"] = c.apiKey

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get("")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("%w: alphavantage returned status %d", ErrProvider, resp.StatusCode())
	}

	return nil
}

// providerFailure maps Alpha Vantage's in-body failure fields to ErrProvider.
// Rate-limit responses arrive as HTTP 200 with a Note or Information field.
func providerFailure(note, info, errMsg string) error {
	switch {
	case errMsg != "":
		return fmt.Errorf("%w: %s", ErrProvider, errMsg)
	case note != "":
		return fmt.Errorf("%w: %s", ErrProvider, note)
	case info != "":
		return fmt.Errorf("%w: %s", ErrProvider, info)
	}
	return nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
