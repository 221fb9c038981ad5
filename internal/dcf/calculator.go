package dcf

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultHorizon is the explicit projection horizon in periods.
	DefaultHorizon = 5

	// MaxTerminalGrowthRate caps the perpetuity growth rate at 3%
	// regardless of the historical growth estimate.
	MaxTerminalGrowthRate = 0.03
)

// ErrZeroShares is returned when shares outstanding is zero; the
// orchestrator surfaces it as an unexpected error.
var ErrZeroShares = errors.New("division by zero: shares outstanding is zero")

// CalculatorInput carries the fully resolved figures for one valuation.
// Optional snapshot fields arrive already defaulted to zero.
type CalculatorInput struct {
	Debt              float64
	Cash              float64
	SharesOutstanding float64

	GrowthRate   float64 // fraction
	DiscountRate float64 // WACC, fraction

	Revenue            float64
	NetIncome          float64
	OperatingCashFlow  float64
	CapitalExpenditure float64 // negative outflow

	Horizon int // 0 means DefaultHorizon
}

// Calculate projects free cash flow over the horizon, discounts it, adds
// a Gordon Growth terminal value and derives intrinsic value per share
// with a human-readable derivation. Pure function: identical inputs
// produce bit-identical output.
func Calculate(in CalculatorInput) (float64, string, error) {
	if in.SharesOutstanding == 0 {
		return 0, "", ErrZeroShares
	}

	horizon := in.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	// Capital expenditure is a negative outflow, so this is effectively
	// operating cash flow minus capex.
	currentFCF := in.OperatingCashFlow + in.CapitalExpenditure

	discounted := make([]float64, 0, horizon)
	totalPV := 0.0
	for i := 1; i <= horizon; i++ {
		projected := currentFCF * math.Pow(1+in.GrowthRate, float64(i))
		pv := projected / math.Pow(1+in.DiscountRate, float64(i))
		discounted = append(discounted, pv)
		totalPV += pv
	}

	// Terminal growth is always the conservative cap, then clamped below
	// the discount rate to keep the denominator positive and bounded.
	terminalGrowth := math.Min(in.GrowthRate, MaxTerminalGrowthRate)
	if in.DiscountRate <= terminalGrowth {
		terminalGrowth = in.DiscountRate - 0.01
	}

	terminalYearFCF := currentFCF * math.Pow(1+in.GrowthRate, float64(horizon))
	terminalValue := terminalYearFCF * (1 + terminalGrowth) / (in.DiscountRate - terminalGrowth)
	terminalValuePV := terminalValue / math.Pow(1+in.DiscountRate, float64(horizon))

	enterpriseValue := totalPV + terminalValuePV
	equityValue := enterpriseValue - in.Debt + in.Cash
	intrinsicValue := equityValue / in.SharesOutstanding

	var b strings.Builder
	b.WriteString("Explanation:\n")
	b.WriteString("\nValuation Breakdown:")
	fmt.Fprintf(&b, "\n1. Current FCF: %s", FormatCurrency(currentFCF))
	b.WriteString("\n2. Projected FCFs (Present Value):")
	for i, pv := range discounted {
		fmt.Fprintf(&b, "\n   Year %d: %s", i+1, FormatCurrency(pv))
	}
	fmt.Fprintf(&b, "\n   Total PV of FCFs: %s", FormatCurrency(totalPV))
	fmt.Fprintf(&b, "\n3. Terminal Value (PV): %s", FormatCurrency(terminalValuePV))
	fmt.Fprintf(&b, "\n4. Enterprise Value: %s", FormatCurrency(enterpriseValue))
	fmt.Fprintf(&b, "\n5. Equity Value: %s", FormatCurrency(equityValue))
	b.WriteString("\n\nKey Financials:")
	fmt.Fprintf(&b, "\nRevenue: %s", FormatCurrency(in.Revenue))
	fmt.Fprintf(&b, "\nNet Income: %s", FormatCurrency(in.NetIncome))
	fmt.Fprintf(&b, "\nOperating Cash Flow: %s", FormatCurrency(in.OperatingCashFlow))
	fmt.Fprintf(&b, "\nCapEx: %s", FormatCurrency(in.CapitalExpenditure))
	fmt.Fprintf(&b, "\nDebt: %s", FormatCurrency(in.Debt))
	fmt.Fprintf(&b, "\nCash: %s", FormatCurrency(in.Cash))
	fmt.Fprintf(&b, "\nWACC: %s", FormatPercent(in.DiscountRate))
	fmt.Fprintf(&b, "\nGrowth Rate: %s", FormatPercent(in.GrowthRate))
	fmt.Fprintf(&b, "\nTerminal Growth Rate: %s", FormatPercent(terminalGrowth))

	return intrinsicValue, b.String(), nil
}
