// Package screener scrapes valuation ratios from screener.in company pages.
package screener

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

const (
	DefaultBaseURL   = "https://www.screener.in"
	DefaultRateLimit = 1 // requests per second; the site throttles aggressively
)

// Client reads "Stock P/E" and "EPS" from the #top-ratios list.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logging.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new screener.in client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     logging.NewSilent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fundamentals scrapes P/E and EPS for symbol (an NSE code such as "TCS").
// The consolidated page is tried first, then the standalone one.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	doc, err := c.fetchPage(ctx, symbol)
	if err != nil {
		return nil, err
	}

	f := &model.Fundamentals{Symbol: symbol}
	doc.Find("#top-ratios li").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".name").Text())
		val := parseNumber(sel.Find(".number").First().Text())

		switch {
		case strings.Contains(name, "Stock P/E"):
			f.PERatio = val
		case strings.Contains(name, "EPS"):
			f.Earnings = val
		}
	})

	if !f.PERatio.Valid && !f.Earnings.Valid {
		return nil, fmt.Errorf("%w: no ratios on screener page for %s", apperrors.ErrFundamentalsUnavailable, symbol)
	}
	return f, nil
}

func (c *Client) fetchPage(ctx context.Context, symbol string) (*goquery.Document, error) {
	code := url.PathEscape(strings.ToUpper(symbol))

	doc, err := c.get(ctx, fmt.Sprintf("%s/company/%s/consolidated/", c.baseURL, code))
	if err == nil {
		return doc, nil
	}

	doc, err = c.get(ctx, fmt.Sprintf("%s/company/%s/", c.baseURL, code))
	if err != nil {
		return nil, fmt.Errorf("screener.in %s: %w", symbol, err)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Str("url", pageURL).Int("status", resp.StatusCode).Msg("Screener page not available")
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse screener HTML: %w", err)
	}
	return doc, nil
}

// parseNumber handles the thousands separators and rupee signs screener prints.
func parseNumber(s string) decimal.NullDecimal {
	s = strings.NewReplacer(",", "", "₹", "", "%", "").Replace(s)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
