package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const (
	livePricePath     = "$.chart.result[0].meta.regularMarketPrice"
	previousClosePath = "$.chart.result[0].meta.chartPreviousClose"
)

// Client fetches quotes from a Yahoo-style chart endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a quote client against the given base URL
// (e.g. "https://query1.finance.yahoo.com").
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

var _ Provider = (*Client)(nil)

// Price returns the live quote for symbol, falling back to the most recent
// daily close. The symbol is normalized (trimmed, uppercased) first.
func (c *Client) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return decimal.Zero, ErrUnavailable
	}

	doc, err := c.fetch(ctx, symbol)
	if err != nil {
		c.logger.Warn("Quote fetch failed", "symbol", symbol, "error", err)
		return decimal.Zero, ErrUnavailable
	}

	// Prefer the live quote field.
	if price, ok := extractFloat(doc, livePricePath); ok {
		return decimal.NewFromFloat(price), nil
	}

	// Fall back to the most recent daily close.
	if price, ok := extractFloat(doc, previousClosePath); ok {
		return decimal.NewFromFloat(price), nil
	}

	c.logger.Warn("Quote response carried no usable price", "symbol", symbol)
	return decimal.Zero, ErrUnavailable
}

func (c *Client) fetch(ctx context.Context, symbol string) (any, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request returned %s", resp.Status)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	return doc, nil
}

// extractFloat evaluates a jsonpath expression and coerces the result to a
// float. jsonpath is never clear about whether it returns a list of one
// answer or a single answer, so both shapes are accepted.
func extractFloat(doc any, path string) (float64, bool) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, false
	}
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, false
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	return val, ok
}

// Normalize canonicalizes a ticker symbol: trimmed and uppercased.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
