package yahoo

import (
	"context"
	"encoding/json"

	"github.com/stockpulse/backend/internal/dcf"
)

// Statements implements dcf.StatementsProvider: it reads the most recent
// annual income statement, cash flow statement and balance sheet plus
// shares outstanding.
func (c *Client) Statements(ctx context.Context, ticker string) (*dcf.StatementSet, error) {
	result, err := c.quoteSummary(ctx, ticker,
		"incomeStatementHistory",
		"cashflowStatementHistory",
		"balanceSheetHistory",
		"defaultKeyStatistics",
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		// No data for the ticker at all; an empty set lets the fetcher
		// report the mandatory-field failure.
		result = map[string]json.RawMessage{}
	}

	set := &dcf.StatementSet{
		Income:   c.statementRows(result, "incomeStatementHistory", "incomeStatementHistory"),
		CashFlow: c.statementRows(result, "cashflowStatementHistory", "cashflowStatements"),
		Balance:  c.statementRows(result, "balanceSheetHistory", "balanceSheetStatements"),
	}

	set.SharesOutstanding = c.sharesOutstanding(ctx, ticker, result)

	return set, nil
}

// statementRows flattens the most recent statement of a history module
// into label-keyed line items. Non-numeric and empty fields are skipped.
func (c *Client) statementRows(result map[string]json.RawMessage, module, listKey string) dcf.StatementRows {
	rows := dcf.StatementRows{}

	moduleRaw, ok := result[module]
	if !ok {
		return rows
	}

	var moduleBody map[string]json.RawMessage
	if err := json.Unmarshal(moduleRaw, &moduleBody); err != nil {
		c.logger.WithError(err).WithField("module", module).Warn("Failed to decode statement module")
		return rows
	}

	listRaw, ok := moduleBody[listKey]
	if !ok {
		return rows
	}

	var statements []map[string]json.RawMessage
	if err := json.Unmarshal(listRaw, &statements); err != nil || len(statements) == 0 {
		return rows
	}

	// Most recent statement first
	for label, fieldRaw := range statements[0] {
		var v rawValue
		if err := json.Unmarshal(fieldRaw, &v); err != nil || v.Raw == nil {
			continue
		}
		rows[label] = *v.Raw
	}

	return rows
}

// sharesOutstanding reads the share count from defaultKeyStatistics, then
// falls back to scraping the key-statistics page when the API omits it.
func (c *Client) sharesOutstanding(ctx context.Context, ticker string, result map[string]json.RawMessage) *float64 {
	if statsRaw, ok := result["defaultKeyStatistics"]; ok {
		var stats struct {
			SharesOutstanding rawValue `json:"sharesOutstanding"`
		}
		if err := json.Unmarshal(statsRaw, &stats); err == nil && stats.SharesOutstanding.Raw != nil {
			return stats.SharesOutstanding.Raw
		}
	}

	shares, err := c.scrapeSharesOutstanding(ctx, ticker)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Debug("Shares outstanding fallback scrape failed")
		return nil
	}

	return shares
}

var _ dcf.StatementsProvider = (*Client)(nil)
