// Package google reads P/E and EPS figures published by a Google Sheets Apps Script endpoint.
//
// The endpoint returns one JSON document listing every tracked stock:
//
//	[{"stockName": "TCS", "peRatio": 29.4, "eps": 128.2}, ...]
//
// Some deployments wrap the rows, e.g. {"data": [...]}; the rows are located
// with a JSONPath expression so either shape works.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// SheetClient looks up fundamentals in the sheet document. Concurrent lookups
// share a single download, and the document is reused for cacheTTL.
type SheetClient struct {
	url        string
	rowsPath   string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     *logging.Logger
	now        func() time.Time

	group     singleflight.Group
	mu        sync.Mutex
	rows      []any
	fetchedAt time.Time
}

// Option configures the client
type Option func(*SheetClient)

// WithRowsPath sets the JSONPath of the rows array (default "$").
func WithRowsPath(path string) Option {
	return func(c *SheetClient) {
		if path != "" {
			c.rowsPath = path
		}
	}
}

// WithCacheTTL sets how long a downloaded document is reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *SheetClient) {
		c.cacheTTL = ttl
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SheetClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *SheetClient) {
		c.logger = logger
	}
}

// NewSheetClient creates a client for the Apps Script endpoint at url.
func NewSheetClient(url string, opts ...Option) *SheetClient {
	c := &SheetClient{
		url:        url,
		rowsPath:   "$",
		cacheTTL:   10 * time.Second,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewSilent(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fundamentals returns the sheet row whose stockName matches symbol, ignoring case.
func (c *SheetClient) Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	rows, err := c.document(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		name, _ := row["stockName"].(string)
		if !strings.EqualFold(name, symbol) {
			continue
		}
		return &model.Fundamentals{
			Symbol:   symbol,
			PERatio:  toNullDecimal(row["peRatio"]),
			Earnings: toNullDecimal(row["eps"]),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s not in sheet", apperrors.ErrFundamentalsUnavailable, symbol)
}

// document returns the cached rows or downloads them once for all waiting callers.
// The download is detached from any one caller's cancellation and bounded by the
// HTTP client timeout; each caller stops waiting when its own ctx is done.
func (c *SheetClient) document(ctx context.Context) ([]any, error) {
	if rows, ok := c.cached(); ok {
		return rows, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("sheet", func() (any, error) {
		if rows, ok := c.cached(); ok {
			return rows, nil
		}
		rows, err := c.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.rows = rows
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return rows, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]any), nil
	}
}

func (c *SheetClient) cached() ([]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rows != nil && c.now().Sub(c.fetchedAt) < c.cacheTTL {
		return c.rows, true
	}
	return nil, false
}

func (c *SheetClient) fetch(ctx context.Context) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Fundamentals sheet request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fundamentals sheet error: status %d", resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}

	found, err := jsonpath.Get(c.rowsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("rows path %q: %w", c.rowsPath, err)
	}

	rows, ok := found.([]any)
	if !ok {
		return nil, fmt.Errorf("rows path %q: not an array", c.rowsPath)
	}

	c.logger.Debug().Int("rows", len(rows)).Msg("Fundamentals sheet fetched")
	return rows, nil
}

// toNullDecimal accepts the numbers and numeric strings a sheet cell can hold.
func toNullDecimal(v any) decimal.NullDecimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(x))
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(x), ",", ""))
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	default:
		return decimal.NullDecimal{}
	}
}
