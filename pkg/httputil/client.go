package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/logger"
)

// Client is an HTTP client wrapper with request logging.
// All outbound HTTP requests go through this client.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
}

// New creates a new HTTP client from config
func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// NewWithTimeout creates a client with custom timeout
func NewWithTimeout(cfg *config.Config, log *logger.Logger, timeout time.Duration) *Client {
	client := New(cfg, log)
	client.httpClient.Timeout = timeout
	return client
}

// WithRateLimit paces outbound requests to at most rps requests per second.
// Intended for free-tier upstream APIs; rps <= 0 leaves the client unpaced.
func (c *Client) WithRateLimit(rps float64) *Client {
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return c
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	// Browser-ish UA; some finance endpoints reject the Go default
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockpulse/1.0)")

	return c.do(req)
}

// GetJSON performs a GET request and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}

	return nil
}

// do executes the request with pacing and logging
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"method": req.Method,
			"url":    req.URL.String(),
		}).Error("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("HTTP request")

	return resp, nil
}
