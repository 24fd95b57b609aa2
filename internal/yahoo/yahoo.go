package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// FinanceClient fetches live quotes and daily price history from the Yahoo Finance chart API.
type FinanceClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logging.Logger
}

// ClientOption configures the client
type ClientOption func(*FinanceClient)

// WithBaseURL sets the base URL, mainly for tests against httptest servers.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *FinanceClient) {
		c.baseURL = baseURL
	}
}

// WithRateLimit sets the maximum requests per second.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *FinanceClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *FinanceClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *FinanceClient) {
		c.logger = logger
	}
}

// NewFinanceClient creates a new Yahoo Finance client.
func NewFinanceClient(opts ...ClientOption) *FinanceClient {
	c := &FinanceClient{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.NewSilent(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Quote returns the current market price for symbol.
//
// The price comes from meta.regularMarketPrice, falling back to the latest
// daily close. A missing or zero price is reported as ErrQuoteUnavailable.
func (c *FinanceClient) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	resp, err := c.QueryYahooSymbol(ctx, symbol, "1d")
	if err != nil {
		return nil, err
	}

	chart, err := c.ParseChart(resp)
	if err != nil {
		return nil, err
	}

	price := chart.RegularMarketPrice
	if price == 0 {
		if latest, ok := chart.LatestClose(); ok {
			price = latest.PriceClose
		}
	}
	if price == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrQuoteUnavailable, symbol)
	}

	return &model.Quote{
		Symbol:   symbol,
		Price:    decimal.NewFromFloat(price),
		Currency: chart.Currency,
		Exchange: chart.ExchangeName,
	}, nil
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
// Sessions whose close is null are skipped. A response with metadata but no
// sessions is valid; Quote can still use the regular market price.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no results returned", apperrors.ErrQuoteUnavailable)
	}

	result := yahooResult.Chart.Result[0]

	chart := PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
	}
	if result.Meta.RegularMarketPrice != nil {
		chart.RegularMarketPrice = *result.Meta.RegularMarketPrice
	}

	if len(result.Indicators.Quote) == 0 {
		return chart, nil
	}

	q := result.Indicators.Quote[0]
	if len(q.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	for i, ts := range result.Timestamp {
		if q.Close[i] == nil {
			continue
		}
		chart.Indicators = append(chart.Indicators, Indicators{
			Date:       time.Unix(ts, 0).UTC(),
			PriceOpen:  valueAt(q.Open, i),
			PriceClose: *q.Close[i],
			Volume:     valueAt(q.Volume, i),
			PriceHigh:  valueAt(q.High, i),
			PriceLow:   valueAt(q.Low, i),
		})
	}

	return chart, nil
}

// LatestClose returns the most recent session with a close price.
func (c PriceChart) LatestClose() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[len(c.Indicators)-1], true
}

// QueryYahooSymbol fetches daily chart data for symbol over a Yahoo range such as "1d" or "5d".
func (c *FinanceClient) QueryYahooSymbol(ctx context.Context, symbol, dataRange string) (Response, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", c.baseURL, url.PathEscape(symbol), url.QueryEscape(dataRange))
	result, err := c.queryYahoo(ctx, symbol, u)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w: no results returned for symbol %s", apperrors.ErrQuoteUnavailable, symbol)
	}

	return result, nil
}

// queryYahoo executes one rate-limited request and decodes the chart envelope.
func (c *FinanceClient) queryYahoo(ctx context.Context, symbol, u string) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Dur("elapsed", elapsed).Msg("Yahoo request failed")
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("yahoo error: status %d for symbol %s", resp.StatusCode, symbol)
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("%w: yahoo error: %s", apperrors.ErrQuoteUnavailable, response.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("yahoo error: status %d for symbol %s", resp.StatusCode, symbol)
	}

	c.logger.Debug().Str("symbol", symbol).Dur("elapsed", elapsed).Msg("Yahoo quote fetched")
	return response, nil
}

func valueAt[T any](values []*T, i int) T {
	var zero T
	if i >= len(values) || values[i] == nil {
		return zero
	}
	return *values[i]
}
