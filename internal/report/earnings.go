package report

import (
	"fmt"

	"github.com/stockpulse/backend/internal/external/yahoo"
)

// quartersReported caps how many recent quarters the report includes
const quartersReported = 4

// EarningsRow is one fully populated quarter, figures pre-formatted in
// billions.
type EarningsRow struct {
	Date      string `json:"date"`
	Revenue   string `json:"revenue"`
	NetIncome string `json:"net_income"`
	EPS       string `json:"eps"`
}

// EarningsReport is the earnings endpoint response
type EarningsReport struct {
	EarningsData     []EarningsRow `json:"earnings_data"`
	UpcomingEarnings string        `json:"upcoming_earnings"`
}

// BuildEarningsReport formats the most recent quarters, newest first.
// Quarters missing any of revenue, net income or EPS are dropped rather
// than reported with holes.
func BuildEarningsReport(data *yahoo.EarningsData) *EarningsReport {
	report := &EarningsReport{
		EarningsData:     []EarningsRow{},
		UpcomingEarnings: "N/A",
	}

	// Provider order is oldest first; walk backwards for newest first
	for i := len(data.Quarters) - 1; i >= 0 && len(report.EarningsData) < quartersReported; i-- {
		q := data.Quarters[i]
		if q.Revenue == nil || q.NetIncome == nil || q.EPS == nil {
			continue
		}

		report.EarningsData = append(report.EarningsData, EarningsRow{
			Date:      q.Date,
			Revenue:   fmt.Sprintf("$%.2fB", *q.Revenue/1e9),
			NetIncome: fmt.Sprintf("$%.2fB", *q.NetIncome/1e9),
			EPS:       fmt.Sprintf("%.2f", *q.EPS),
		})
	}

	if data.NextEarningsDate != nil {
		report.UpcomingEarnings = data.NextEarningsDate.Format("2006-01-02")
	}

	return report
}
