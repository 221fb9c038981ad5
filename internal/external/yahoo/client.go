package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

// Client handles communication with Yahoo Finance.
// All Yahoo Finance calls go through this client.
type Client struct {
	httpClient  *httputil.Client
	logger      *logger.Logger
	baseURL     string // query API
	feedBaseURL string // RSS feeds
	webBaseURL  string // HTML pages
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.YahooConfig) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      log,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		feedBaseURL: strings.TrimRight(cfg.FeedBaseURL, "/"),
		webBaseURL:  strings.TrimRight(cfg.WebBaseURL, "/"),
	}
}

// rawValue is Yahoo's wrapped numeric: {"raw": 1234.5, "fmt": "1.23K"}.
// Raw stays nil for empty placeholders ({}).
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// apiError is the error object embedded in quoteSummary responses
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *apiError                    `json:"error"`
	} `json:"quoteSummary"`
}

// quoteSummary fetches the requested quoteSummary modules for ticker.
// An empty result set comes back as nil, nil; the callers decide whether
// that is fatal.
func (c *Client) quoteSummary(ctx context.Context, ticker string, modules ...string) (map[string]json.RawMessage, error) {
	params := url.Values{}
	params.Set("modules", strings.Join(modules, ","))

	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s",
		c.baseURL, url.PathEscape(ticker), params.Encode())

	var envelope quoteSummaryEnvelope
	if err := c.httpClient.GetJSON(ctx, fullURL, &envelope); err != nil {
		return nil, fmt.Errorf("quoteSummary request failed: %w", err)
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error for %s: %s",
			ticker, envelope.QuoteSummary.Error.Description)
	}

	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	return envelope.QuoteSummary.Result[0], nil
}
