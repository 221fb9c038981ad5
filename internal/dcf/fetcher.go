package dcf

import (
	"context"
	"fmt"

	"github.com/stockpulse/backend/pkg/logger"
)

// Ordered label aliases per line item. Providers disagree on labels for
// the same figure, so each field carries an explicit priority list.
var (
	revenueAliases           = []string{"totalRevenue", "revenue"}
	netIncomeAliases         = []string{"netIncome"}
	operatingCashFlowAliases = []string{"totalCashFromOperatingActivities", "operatingCashFlow"}
	capexAliases             = []string{"capitalExpenditures", "capitalExpenditure"}
	debtAliases              = []string{"totalDebt", "longTermDebt"}
	cashAliases              = []string{"cashAndCashEquivalents", "cash"}
)

// Fetcher retrieves raw company financials from the statements provider.
// No caching: every call re-fetches.
type Fetcher struct {
	provider StatementsProvider
	logger   *logger.Logger
}

// NewFetcher creates a new financial data fetcher
func NewFetcher(provider StatementsProvider, log *logger.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		logger:   log,
	}
}

// Fetch reads the most recent statements for ticker and assembles a
// FinancialSnapshot. Shares outstanding is the one mandatory field; its
// absence is a DataUnavailable failure. Debt and cash default to 0 when
// absent, other missing line items stay nil.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) (*FinancialSnapshot, error) {
	stmts, err := f.provider.Statements(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch statements for %s: %w", ticker, err)
	}

	if stmts.SharesOutstanding == nil {
		return nil, DataUnavailablef("Shares outstanding data unavailable for %s", ticker)
	}

	snapshot := &FinancialSnapshot{
		Revenue:            stmts.Income.Lookup(revenueAliases),
		NetIncome:          stmts.Income.Lookup(netIncomeAliases),
		OperatingCashFlow:  stmts.CashFlow.Lookup(operatingCashFlowAliases),
		CapitalExpenditure: stmts.CashFlow.Lookup(capexAliases),
		SharesOutstanding:  *stmts.SharesOutstanding,
	}

	if debt := stmts.Balance.Lookup(debtAliases); debt != nil {
		snapshot.TotalDebt = *debt
	} else {
		f.logger.WithField("ticker", ticker).Debug("Total debt unavailable, defaulting to 0")
	}

	if cash := stmts.Balance.Lookup(cashAliases); cash != nil {
		snapshot.Cash = *cash
	} else {
		f.logger.WithField("ticker", ticker).Debug("Cash unavailable, defaulting to 0")
	}

	return snapshot, nil
}
