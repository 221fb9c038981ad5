package yahoo

import (
	"context"
	"encoding/json"
	"time"
)

// QuarterlyEarnings is one reported quarter. Values stay nil when Yahoo
// has no figure for that quarter.
type QuarterlyEarnings struct {
	Date      string // e.g. "3Q2024"
	Revenue   *float64
	NetIncome *float64
	EPS       *float64
}

// EarningsData bundles recent quarterly results with the next scheduled
// earnings date, when known.
type EarningsData struct {
	Quarters         []QuarterlyEarnings
	NextEarningsDate *time.Time
}

type earningsModule struct {
	EarningsChart struct {
		Quarterly []struct {
			Date   string   `json:"date"`
			Actual rawValue `json:"actual"`
		} `json:"quarterly"`
	} `json:"earningsChart"`
	FinancialsChart struct {
		Quarterly []struct {
			Date     string   `json:"date"`
			Revenue  rawValue `json:"revenue"`
			Earnings rawValue `json:"earnings"`
		} `json:"quarterly"`
	} `json:"financialsChart"`
}

type calendarEventsModule struct {
	Earnings struct {
		EarningsDate []rawValue `json:"earningsDate"`
	} `json:"earnings"`
}

// Earnings fetches quarterly revenue, net income and EPS for the last
// reported quarters plus the upcoming earnings date.
func (c *Client) Earnings(ctx context.Context, ticker string) (*EarningsData, error) {
	result, err := c.quoteSummary(ctx, ticker, "earnings", "calendarEvents")
	if err != nil {
		return nil, err
	}

	data := &EarningsData{}
	if result == nil {
		return data, nil
	}

	var earnings earningsModule
	if raw, ok := result["earnings"]; ok {
		if err := json.Unmarshal(raw, &earnings); err != nil {
			c.logger.WithError(err).WithField("ticker", ticker).Warn("Failed to decode earnings module")
		}
	}

	// EPS actuals keyed by quarter label
	eps := make(map[string]*float64, len(earnings.EarningsChart.Quarterly))
	for _, q := range earnings.EarningsChart.Quarterly {
		eps[q.Date] = q.Actual.Raw
	}

	for _, q := range earnings.FinancialsChart.Quarterly {
		data.Quarters = append(data.Quarters, QuarterlyEarnings{
			Date:      q.Date,
			Revenue:   q.Revenue.Raw,
			NetIncome: q.Earnings.Raw,
			EPS:       eps[q.Date],
		})
	}

	if raw, ok := result["calendarEvents"]; ok {
		var calendar calendarEventsModule
		if err := json.Unmarshal(raw, &calendar); err == nil {
			for _, d := range calendar.Earnings.EarningsDate {
				if d.Raw != nil {
					next := time.Unix(int64(*d.Raw), 0).UTC()
					data.NextEarningsDate = &next
					break
				}
			}
		}
	}

	return data, nil
}
