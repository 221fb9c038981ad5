package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/stockpulse/backend/internal/dcf"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

// Client handles communication with the Financial Modeling Prep API.
// All FMP calls go through this client; the API credential is injected
// at construction, never read from the environment here.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new FMP client
func NewClient(httpClient *httputil.Client, log *logger.Logger, cfg config.FMPConfig) *Client {
	return &Client{
		httpClient: httpClient.WithRateLimit(cfg.RequestsPerSecond),
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// endpoint builds an API URL with the credential attached
func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
}

// Beta fetches the stock beta; nil when FMP has none for the ticker
func (c *Client) Beta(ctx context.Context, ticker string) (*float64, error) {
	params := url.Values{}
	params.Set("symbol", ticker)

	var rows []struct {
		Beta *float64 `json:"beta"`
	}
	if err := c.httpClient.GetJSON(ctx, c.endpoint("stock/beta", params), &rows); err != nil {
		return nil, fmt.Errorf("fetch beta: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].Beta, nil
}

// TreasuryYield10Y fetches the 10-year treasury benchmark yield in
// percent units; nil when no treasury data is available
func (c *Client) TreasuryYield10Y(ctx context.Context) (*float64, error) {
	var rows []struct {
		Year10 *float64 `json:"year10"`
	}
	if err := c.httpClient.GetJSON(ctx, c.endpoint("treasury", nil), &rows); err != nil {
		return nil, fmt.Errorf("fetch treasury yields: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].Year10, nil
}

// MarketCap fetches the market capitalization from the quote endpoint;
// nil when the ticker has no quote
func (c *Client) MarketCap(ctx context.Context, ticker string) (*float64, error) {
	var rows []struct {
		MarketCap *float64 `json:"marketCap"`
	}
	if err := c.httpClient.GetJSON(ctx, c.endpoint("quote/"+url.PathEscape(ticker), nil), &rows); err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].MarketCap, nil
}

// LatestIncomeStatement fetches the most recent annual income statement;
// nil when FMP has no statements for the ticker
func (c *Client) LatestIncomeStatement(ctx context.Context, ticker string) (*dcf.IncomeStatement, error) {
	params := url.Values{}
	params.Set("limit", "1")

	var rows []struct {
		InterestExpense  float64 `json:"interestExpense"`
		IncomeTaxExpense float64 `json:"incomeTaxExpense"`
		IncomeBeforeTax  float64 `json:"incomeBeforeTax"`
	}
	if err := c.httpClient.GetJSON(ctx, c.endpoint("income-statement/"+url.PathEscape(ticker), params), &rows); err != nil {
		return nil, fmt.Errorf("fetch income statement: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return &dcf.IncomeStatement{
		InterestExpense:  rows[0].InterestExpense,
		IncomeTaxExpense: rows[0].IncomeTaxExpense,
		IncomeBeforeTax:  rows[0].IncomeBeforeTax,
	}, nil
}

// LatestBalanceSheet fetches the most recent annual balance sheet; nil
// when FMP has no statements for the ticker
func (c *Client) LatestBalanceSheet(ctx context.Context, ticker string) (*dcf.BalanceSheet, error) {
	params := url.Values{}
	params.Set("limit", "1")

	var rows []struct {
		TotalDebt float64 `json:"totalDebt"`
	}
	if err := c.httpClient.GetJSON(ctx, c.endpoint("balance-sheet-statement/"+url.PathEscape(ticker), params), &rows); err != nil {
		return nil, fmt.Errorf("fetch balance sheet: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return &dcf.BalanceSheet{TotalDebt: rows[0].TotalDebt}, nil
}

// FreeCashFlowHistory fetches up to limit annual free cash flow values,
// newest first. Statements without a freeCashFlow field are skipped.
func (c *Client) FreeCashFlowHistory(ctx context.Context, ticker string, limit int) ([]float64, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var rows []struct {
		FreeCashFlow *float64 `json:"freeCashFlow"`
	}
	if err := c.httpClient.GetJSON(ctx, c.endpoint("cash-flow-statement/"+url.PathEscape(ticker), params), &rows); err != nil {
		return nil, fmt.Errorf("fetch cash flow statements: %w", err)
	}

	fcf := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.FreeCashFlow != nil {
			fcf = append(fcf, *row.FreeCashFlow)
		}
	}

	return fcf, nil
}

var _ dcf.CapitalDataProvider = (*Client)(nil)
