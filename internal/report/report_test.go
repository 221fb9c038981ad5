package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/external/yahoo"
)

func f64(v float64) *float64 { return &v }

func TestNewsArticles(t *testing.T) {
	items := []yahoo.NewsItem{
		{
			Title:    "Full article",
			Summary:  "A summary",
			PubDate:  "Mon, 24 Aug 2026 12:00:00 +0000",
			Provider: "Example Wire",
			URL:      "https://example.com/a",
		},
		{}, // everything missing
	}

	articles := NewsArticles(items)
	require.Len(t, articles, 2)

	assert.Equal(t, "Full article", articles[0].Title)
	assert.Equal(t, "Example Wire", articles[0].Provider)
	// The feed never carries images
	assert.Equal(t, "No thumbnail available", articles[0].ThumbnailURL)

	sparse := articles[1]
	assert.Equal(t, "No title available", sparse.Title)
	assert.Equal(t, "No summary available", sparse.Summary)
	assert.Equal(t, "No publish date available", sparse.PubDate)
	assert.Equal(t, "No provider available", sparse.Provider)
	assert.Equal(t, "No URL available", sparse.URL)
}

func TestBuildEarningsReport(t *testing.T) {
	next := time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)
	data := &yahoo.EarningsData{
		// Oldest first, as the provider returns them
		Quarters: []yahoo.QuarterlyEarnings{
			{Date: "1Q2025", Revenue: f64(80e9), NetIncome: f64(20e9), EPS: f64(1.10)},
			{Date: "2Q2025", Revenue: f64(85e9), NetIncome: f64(21e9), EPS: f64(1.15)},
			{Date: "3Q2025", Revenue: f64(88e9), NetIncome: nil, EPS: f64(1.20)}, // hole, dropped
			{Date: "4Q2025", Revenue: f64(92e9), NetIncome: f64(24e9), EPS: f64(1.30)},
			{Date: "1Q2026", Revenue: f64(90e9), NetIncome: f64(23e9), EPS: f64(1.28)},
			{Date: "2Q2026", Revenue: f64(95e9), NetIncome: f64(25e9), EPS: f64(1.42)},
		},
		NextEarningsDate: &next,
	}

	report := BuildEarningsReport(data)

	assert.Equal(t, "2026-10-30", report.UpcomingEarnings)
	require.Len(t, report.EarningsData, quartersReported)

	// Newest first, incomplete 3Q2025 skipped
	wantDates := []string{"2Q2026", "1Q2026", "4Q2025", "2Q2025"}
	for i, want := range wantDates {
		assert.Equal(t, want, report.EarningsData[i].Date)
	}

	newest := report.EarningsData[0]
	assert.Equal(t, "$95.00B", newest.Revenue)
	assert.Equal(t, "$25.00B", newest.NetIncome)
	assert.Equal(t, "1.42", newest.EPS)
}

func TestBuildEarningsReportEmpty(t *testing.T) {
	report := BuildEarningsReport(&yahoo.EarningsData{})

	assert.Equal(t, "N/A", report.UpcomingEarnings)
	assert.NotNil(t, report.EarningsData)
	assert.Empty(t, report.EarningsData)
}

func TestFilterUnusual(t *testing.T) {
	contracts := []yahoo.OptionContract{
		// 900 / (100+1) ≈ 8.9: unusual
		{ContractSymbol: "HOT", Volume: 900, OpenInterest: 100},
		// 50 / (400+1) ≈ 0.12: normal
		{ContractSymbol: "QUIET", Volume: 50, OpenInterest: 400},
		// 200 / (100+1) ≈ 1.98: just under the threshold
		{ContractSymbol: "EDGE", Volume: 200, OpenInterest: 100},
		// zero open interest guarded by +1: 10 / 1 = 10
		{ContractSymbol: "FRESH", Volume: 10, OpenInterest: 0},
	}

	unusual := FilterUnusual(contracts)
	require.Len(t, unusual, 2)
	assert.Equal(t, "HOT", unusual[0].ContractSymbol)
	assert.Equal(t, "FRESH", unusual[1].ContractSymbol)
	assert.Equal(t, 10.0, unusual[1].VolumeOIRatio)
}

func TestFilterUnusualEmpty(t *testing.T) {
	got := FilterUnusual(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
