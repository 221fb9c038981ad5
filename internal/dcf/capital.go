package dcf

import (
	"context"
	"fmt"
	"math"

	"github.com/stockpulse/backend/pkg/logger"
)

const (
	// AssumedMarketReturn is the historical equity market return used in
	// the CAPM cost-of-equity estimate.
	AssumedMarketReturn = 0.08

	// FallbackGrowthRate is used when fewer than two free-cash-flow data
	// points are available for the CAGR.
	FallbackGrowthRate = 0.02

	// GrowthHistoryPeriods caps how many annual FCF values feed the CAGR.
	GrowthHistoryPeriods = 5
)

// Estimator derives WACC, a historical growth rate and an informational
// terminal value from the cost-of-capital provider.
type Estimator struct {
	provider CapitalDataProvider
	logger   *logger.Logger
}

// NewEstimator creates a new cost-of-capital estimator
func NewEstimator(provider CapitalDataProvider, log *logger.Logger) *Estimator {
	return &Estimator{
		provider: provider,
		logger:   log,
	}
}

// Estimate computes the CapitalCostEstimate for ticker.
// Unavailable inputs fall back silently (beta 1.0, risk-free 0, market
// cap 0); a ticker with no statements at all is FinancialsUnavailable.
func (e *Estimator) Estimate(ctx context.Context, ticker string) (*CapitalCostEstimate, error) {
	beta := 1.0
	if b, err := e.provider.Beta(ctx, ticker); err != nil {
		return nil, fmt.Errorf("fetch beta for %s: %w", ticker, err)
	} else if b != nil {
		beta = *b
	} else {
		e.logger.WithField("ticker", ticker).Debug("Beta unavailable, defaulting to 1.0")
	}

	riskFree := 0.0
	if y, err := e.provider.TreasuryYield10Y(ctx); err != nil {
		return nil, fmt.Errorf("fetch 10y treasury yield: %w", err)
	} else if y != nil {
		riskFree = *y / 100
	} else {
		e.logger.Debug("Treasury yield unavailable, defaulting risk-free rate to 0")
	}

	marketCap := 0.0
	if m, err := e.provider.MarketCap(ctx, ticker); err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", ticker, err)
	} else if m != nil {
		marketCap = *m
	}

	income, err := e.provider.LatestIncomeStatement(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch income statement for %s: %w", ticker, err)
	}
	balance, err := e.provider.LatestBalanceSheet(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch balance sheet for %s: %w", ticker, err)
	}
	if income == nil || balance == nil {
		return nil, FinancialsUnavailablef("Financial statements not available for %s", ticker)
	}

	// Cost of equity via CAPM
	costEquity := riskFree + beta*(AssumedMarketReturn-riskFree)

	// Cost of debt
	costDebt := 0.0
	if balance.TotalDebt != 0 {
		costDebt = income.InterestExpense / balance.TotalDebt
	}

	// Effective tax rate
	taxRate := 0.0
	if income.IncomeBeforeTax != 0 {
		taxRate = income.IncomeTaxExpense / income.IncomeBeforeTax
	}

	// Capital-structure weights
	equityWeight := 0.0
	debtWeight := 0.0
	if marketCap != 0 {
		equityWeight = marketCap / (marketCap + balance.TotalDebt)
		debtWeight = balance.TotalDebt / (marketCap + balance.TotalDebt)
	}

	wacc := equityWeight*costEquity + debtWeight*costDebt*(1-taxRate)

	fcf, err := e.provider.FreeCashFlowHistory(ctx, ticker, GrowthHistoryPeriods)
	if err != nil {
		return nil, fmt.Errorf("fetch cash flow history for %s: %w", ticker, err)
	}

	if len(fcf) < 2 {
		e.logger.WithField("ticker", ticker).Debug("Insufficient FCF history, using fallback growth rate")
	}
	growth := growthRate(fcf)

	estimate := &CapitalCostEstimate{
		WACC:          wacc,
		GrowthRate:    growth,
		TerminalValue: terminalValue(fcf, wacc, growth),
	}

	return estimate, nil
}

// growthRate computes the free-cash-flow CAGR from a newest-first history.
// Fewer than two usable points, a zero oldest value or a non-finite result
// all fall back to FallbackGrowthRate.
func growthRate(fcf []float64) float64 {
	if len(fcf) < 2 {
		return FallbackGrowthRate
	}

	latest, oldest := fcf[0], fcf[len(fcf)-1]
	if oldest == 0 {
		return FallbackGrowthRate
	}

	periods := float64(len(fcf) - 1)
	cagr := math.Pow(latest/oldest, 1/periods) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return FallbackGrowthRate
	}

	return cagr
}

// terminalValue computes the informational Gordon Growth estimate, nil
// when the denominator would be zero or no FCF history exists. The
// valuation calculator recomputes its own terminal value independently.
func terminalValue(fcf []float64, wacc, growth float64) *float64 {
	if len(fcf) == 0 || wacc == growth {
		return nil
	}

	tv := fcf[0] * (1 + growth) / (wacc - growth)
	return &tv
}
