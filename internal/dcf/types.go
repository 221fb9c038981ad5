package dcf

import "context"

// FinancialSnapshot holds the raw company financials backing one valuation.
// Sourced once per request and immutable after fetch. Fields are nominal
// currency amounts except SharesOutstanding (count). Optional line items
// stay nil when the provider carries none of their label aliases.
type FinancialSnapshot struct {
	Revenue            *float64
	NetIncome          *float64
	OperatingCashFlow  *float64
	CapitalExpenditure *float64 // negative outflow in source data
	TotalDebt          float64  // defaults to 0 when absent
	Cash               float64  // defaults to 0 when absent
	SharesOutstanding  float64  // mandatory
}

// CapitalCostEstimate holds the discount-rate inputs for one valuation.
// Computed fresh per request, never cached.
type CapitalCostEstimate struct {
	WACC          float64  // fraction
	GrowthRate    float64  // historical FCF CAGR, fraction
	TerminalValue *float64 // Gordon Growth estimate, nil when WACC == growth
}

// ValuationResult is the terminal artifact returned to the caller:
// either an intrinsic value with its derivation, or an error message.
type ValuationResult struct {
	IntrinsicValuePerShare *float64 `json:"intrinsic_value_per_share,omitempty"`
	Explanation            string   `json:"explanation,omitempty"`
	Error                  string   `json:"error,omitempty"`
}

// StatementRows is one financial statement flattened into label-keyed
// line items, as returned by the statements provider.
type StatementRows map[string]float64

// Lookup returns the first line item matching the ordered alias list,
// or nil when none of the aliases is present.
func (r StatementRows) Lookup(aliases []string) *float64 {
	for _, alias := range aliases {
		if v, ok := r[alias]; ok {
			return &v
		}
	}
	return nil
}

// StatementSet bundles the most recent statements plus basic profile data
// for one ticker.
type StatementSet struct {
	Income            StatementRows
	CashFlow          StatementRows
	Balance           StatementRows
	SharesOutstanding *float64
}

// StatementsProvider supplies the most recent income statement, cash flow
// statement and balance sheet for a ticker (provider A).
type StatementsProvider interface {
	Statements(ctx context.Context, ticker string) (*StatementSet, error)
}

// IncomeStatement holds the income-statement figures the cost-of-capital
// estimate needs.
type IncomeStatement struct {
	InterestExpense  float64
	IncomeTaxExpense float64
	IncomeBeforeTax  float64
}

// BalanceSheet holds the balance-sheet figures the cost-of-capital
// estimate needs.
type BalanceSheet struct {
	TotalDebt float64
}

// CapitalDataProvider supplies beta, benchmark yield, market quote and
// statement history for the cost-of-capital estimate (provider B).
// Pointer returns are nil when the provider has no data for the ticker;
// only transport-level failures come back as errors.
type CapitalDataProvider interface {
	Beta(ctx context.Context, ticker string) (*float64, error)
	TreasuryYield10Y(ctx context.Context) (*float64, error) // percent units
	MarketCap(ctx context.Context, ticker string) (*float64, error)
	LatestIncomeStatement(ctx context.Context, ticker string) (*IncomeStatement, error)
	LatestBalanceSheet(ctx context.Context, ticker string) (*BalanceSheet, error)
	// FreeCashFlowHistory returns up to limit annual free-cash-flow values,
	// newest first.
	FreeCashFlowHistory(ctx context.Context, ticker string, limit int) ([]float64, error)
}
