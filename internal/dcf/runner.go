package dcf

import (
	"context"
	"fmt"
	"math"

	"github.com/stockpulse/backend/pkg/logger"
)

// Runner sequences Fetcher, Estimator and Calculator for one ticker and
// translates failures into a structured result. Single attempt per
// request, no retries, no partial results.
type Runner struct {
	fetcher   *Fetcher
	estimator *Estimator
	logger    *logger.Logger
}

// NewRunner creates a new valuation runner
func NewRunner(fetcher *Fetcher, estimator *Estimator, log *logger.Logger) *Runner {
	return &Runner{
		fetcher:   fetcher,
		estimator: estimator,
		logger:    log,
	}
}

// Run executes a full DCF valuation. Domain failures surface their
// message verbatim; anything else comes back wrapped as an unexpected
// error. Run never panics outward.
func (r *Runner) Run(ctx context.Context, ticker string) (result *ValuationResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithField("ticker", ticker).Errorf("Valuation panic: %v", rec)
			result = &ValuationResult{Error: fmt.Sprintf("Unexpected error: %v", rec)}
		}
	}()

	snapshot, err := r.fetcher.Fetch(ctx, ticker)
	if err != nil {
		return errorResult(err)
	}

	estimate, err := r.estimator.Estimate(ctx, ticker)
	if err != nil {
		return errorResult(err)
	}

	if math.IsNaN(estimate.WACC) {
		return &ValuationResult{Error: fmt.Sprintf("Missing WACC for %s", ticker)}
	}

	value, explanation, err := Calculate(CalculatorInput{
		Debt:               snapshot.TotalDebt,
		Cash:               snapshot.Cash,
		SharesOutstanding:  snapshot.SharesOutstanding,
		GrowthRate:         estimate.GrowthRate,
		DiscountRate:       estimate.WACC,
		Revenue:            valueOrZero(snapshot.Revenue),
		NetIncome:          valueOrZero(snapshot.NetIncome),
		OperatingCashFlow:  valueOrZero(snapshot.OperatingCashFlow),
		CapitalExpenditure: valueOrZero(snapshot.CapitalExpenditure),
	})
	if err != nil {
		return errorResult(err)
	}

	r.logger.WithFields(map[string]interface{}{
		"ticker":    ticker,
		"wacc":      estimate.WACC,
		"growth":    estimate.GrowthRate,
		"intrinsic": value,
	}).Info("Valuation complete")

	return &ValuationResult{
		IntrinsicValuePerShare: &value,
		Explanation:            explanation,
	}
}

// errorResult converts an error into the structured failure result.
// ValuationError messages pass through verbatim, everything else gets the
// generic prefix and never a stack trace.
func errorResult(err error) *ValuationResult {
	if verr, ok := AsValuationError(err); ok {
		return &ValuationResult{Error: verr.Message}
	}
	return &ValuationResult{Error: fmt.Sprintf("Unexpected error: %v", err)}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
