package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

// newTestClient points every base URL of a Client at the test server
func newTestClient(server *httptest.Server) *Client {
	cfg := &config.Config{HTTPTimeout: 5 * time.Second}
	log := logger.NewNop()

	return NewClient(httputil.New(cfg, log), log, config.YahooConfig{
		BaseURL:     server.URL,
		FeedBaseURL: server.URL,
		WebBaseURL:  server.URL,
	})
}

const statementsBody = `{
  "quoteSummary": {
    "result": [{
      "incomeStatementHistory": {
        "incomeStatementHistory": [
          {"totalRevenue": {"raw": 10000000000, "fmt": "10B"},
           "netIncome": {"raw": 2000000000, "fmt": "2B"},
           "endDate": {"raw": 1703980800, "fmt": "2023-12-31"}},
          {"totalRevenue": {"raw": 9000000000, "fmt": "9B"}}
        ]
      },
      "cashflowStatementHistory": {
        "cashflowStatements": [
          {"totalCashFromOperatingActivities": {"raw": 3000000000},
           "capitalExpenditures": {"raw": -1000000000},
           "someEmptyField": {}}
        ]
      },
      "balanceSheetHistory": {
        "balanceSheetStatements": [
          {"totalDebt": {"raw": 5000000000},
           "cash": {"raw": 1000000000}}
        ]
      },
      "defaultKeyStatistics": {
        "sharesOutstanding": {"raw": 1000000000, "fmt": "1B"}
      }
    }],
    "error": null
  }
}`

func TestStatements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/TEST" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(statementsBody))
	}))
	defer server.Close()

	set, err := newTestClient(server).Statements(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("Statements() error = %v", err)
	}

	if v, ok := set.Income["totalRevenue"]; !ok || v != 10e9 {
		t.Errorf("Income totalRevenue = %v, want most recent statement's 10e9", v)
	}
	if v, ok := set.CashFlow["capitalExpenditures"]; !ok || v != -1e9 {
		t.Errorf("CashFlow capitalExpenditures = %v, want -1e9", v)
	}
	if _, ok := set.CashFlow["someEmptyField"]; ok {
		t.Error("Empty raw values must be skipped")
	}
	if v, ok := set.Balance["totalDebt"]; !ok || v != 5e9 {
		t.Errorf("Balance totalDebt = %v, want 5e9", v)
	}
	if set.SharesOutstanding == nil || *set.SharesOutstanding != 1e9 {
		t.Errorf("SharesOutstanding = %v, want 1e9", set.SharesOutstanding)
	}
}

func TestStatementsScrapeFallback(t *testing.T) {
	// defaultKeyStatistics omits the share count, so the client falls back
	// to the key-statistics page.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v10/finance/quoteSummary/TEST":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"quoteSummary": {"result": [{"defaultKeyStatistics": {"sharesOutstanding": {}}}], "error": null}}`))
		case "/quote/TEST/key-statistics":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><body><table>
				<tr><td>Market Cap</td><td>2.5T</td></tr>
				<tr><td>Shares Outstanding</td><td>16.82B</td></tr>
			</table></body></html>`))
		default:
			t.Errorf("Unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	set, err := newTestClient(server).Statements(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("Statements() error = %v", err)
	}

	if set.SharesOutstanding == nil || *set.SharesOutstanding != 16.82e9 {
		t.Errorf("SharesOutstanding = %v, want 16.82e9 via page scrape", set.SharesOutstanding)
	}
}

func TestStatementsEmptyResult(t *testing.T) {
	// Unknown ticker: empty result set and a failing scrape leave the
	// share count nil for the caller to report.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v10/finance/quoteSummary/NOPE" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	set, err := newTestClient(server).Statements(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("Statements() error = %v", err)
	}
	if set.SharesOutstanding != nil {
		t.Errorf("SharesOutstanding = %v, want nil", *set.SharesOutstanding)
	}
	if len(set.Income) != 0 || len(set.CashFlow) != 0 || len(set.Balance) != 0 {
		t.Error("Expected empty statement rows for unknown ticker")
	}
}

func TestParseSuffixedNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"16.82B", 16.82e9, false},
		{"452.3M", 452.3e6, false},
		{"1.5T", 1.5e12, false},
		{"980K", 980e3, false},
		{"1,234.5", 1234.5, false},
		{" 42 ", 42, false},
		{"N/A", 0, true},
		{"--", 0, true},
		{"", 0, true},
		{"abcB", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSuffixedNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSuffixedNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseSuffixedNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNews(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <item>
      <title>Quarterly results beat estimates</title>
      <link>https://example.com/article-1</link>
      <description>The company reported strong numbers.</description>
      <pubDate>Mon, 24 Aug 2026 12:00:00 +0000</pubDate>
      <source url="https://example.com">Example Wire</source>
    </item>
    <item>
      <title>Second headline</title>
      <link>https://example.com/article-2</link>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rss/2.0/headline" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("s"); got != "TEST" {
			t.Errorf("Ticker param = %q, want TEST", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	defer server.Close()

	items, err := newTestClient(server).News(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("News() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.Title != "Quarterly results beat estimates" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Provider != "Example Wire" {
		t.Errorf("Provider = %q, want Example Wire", first.Provider)
	}
	if first.URL != "https://example.com/article-1" {
		t.Errorf("URL = %q", first.URL)
	}

	// Sparse second item: empty fields, not an error
	if items[1].Provider != "" || items[1].Summary != "" {
		t.Error("Expected empty provider and summary for sparse item")
	}
}

func TestDailyHistory(t *testing.T) {
	body := `{
  "chart": {
    "result": [{
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0],
          "high":   [105.0, null, 106.0],
          "low":    [99.0,  null, 101.0],
          "close":  [104.0, null, 105.5],
          "volume": [1000000, null, 1200000]
        }]
      }
    }],
    "error": null
  }
}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/TEST" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	from := time.Unix(1699900000, 0)
	to := time.Unix(1700200000, 0)

	candles, err := newTestClient(server).DailyHistory(context.Background(), "TEST", from, to)
	if err != nil {
		t.Fatalf("DailyHistory() error = %v", err)
	}

	// The null middle bar is dropped
	if len(candles) != 2 {
		t.Fatalf("len(candles) = %d, want 2", len(candles))
	}
	if candles[0].Close != 104.0 || candles[1].Close != 105.5 {
		t.Errorf("Closes = %v/%v, want 104.0/105.5", candles[0].Close, candles[1].Close)
	}
	if candles[0].Volume != 1000000 {
		t.Errorf("Volume = %d, want 1000000", candles[0].Volume)
	}
}

func TestNearestOptionChain(t *testing.T) {
	body := `{
  "optionChain": {
    "result": [{
      "options": [{
        "expirationDate": 1756425600,
        "calls": [
          {"contractSymbol": "TEST260828C00100000", "strike": 100, "lastPrice": 5.1, "volume": 900, "openInterest": 100}
        ],
        "puts": [
          {"contractSymbol": "TEST260828P00090000", "strike": 90, "lastPrice": 1.2, "volume": 50, "openInterest": 400}
        ]
      }]
    }],
    "error": null
  }
}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v7/finance/options/TEST" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	chain, err := newTestClient(server).NearestOptionChain(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("NearestOptionChain() error = %v", err)
	}
	if chain == nil {
		t.Fatal("Expected a chain")
	}
	if len(chain.Calls) != 1 || len(chain.Puts) != 1 {
		t.Fatalf("Calls/Puts = %d/%d, want 1/1", len(chain.Calls), len(chain.Puts))
	}
	if chain.Calls[0].Strike != 100 || chain.Calls[0].Volume != 900 {
		t.Errorf("Unexpected call contract: %+v", chain.Calls[0])
	}
	if chain.ExpirationDate.Unix() != 1756425600 {
		t.Errorf("ExpirationDate = %v", chain.ExpirationDate)
	}
}

func TestNearestOptionChainNone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"optionChain": {"result": [{"options": []}], "error": null}}`))
	}))
	defer server.Close()

	chain, err := newTestClient(server).NearestOptionChain(context.Background(), "NOPT")
	if err != nil {
		t.Fatalf("NearestOptionChain() error = %v", err)
	}
	if chain != nil {
		t.Errorf("Expected nil chain for ticker without options, got %+v", chain)
	}
}

func TestEarnings(t *testing.T) {
	body := `{
  "quoteSummary": {
    "result": [{
      "earnings": {
        "earningsChart": {
          "quarterly": [
            {"date": "2Q2026", "actual": {"raw": 1.42}},
            {"date": "1Q2026", "actual": {"raw": 1.30}}
          ]
        },
        "financialsChart": {
          "quarterly": [
            {"date": "1Q2026", "revenue": {"raw": 90000000000}, "earnings": {"raw": 23000000000}},
            {"date": "2Q2026", "revenue": {"raw": 95000000000}, "earnings": {"raw": 25000000000}}
          ]
        }
      },
      "calendarEvents": {
        "earnings": {
          "earningsDate": [{"raw": 1761782400}]
        }
      }
    }],
    "error": null
  }
}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	data, err := newTestClient(server).Earnings(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("Earnings() error = %v", err)
	}

	if len(data.Quarters) != 2 {
		t.Fatalf("len(Quarters) = %d, want 2", len(data.Quarters))
	}

	// EPS joined by quarter label, not by slice position
	second := data.Quarters[1]
	if second.Date != "2Q2026" {
		t.Fatalf("Date = %q, want 2Q2026", second.Date)
	}
	if second.EPS == nil || *second.EPS != 1.42 {
		t.Errorf("EPS = %v, want 1.42", second.EPS)
	}
	if second.Revenue == nil || *second.Revenue != 95e9 {
		t.Errorf("Revenue = %v, want 95e9", second.Revenue)
	}

	if data.NextEarningsDate == nil || data.NextEarningsDate.Unix() != 1761782400 {
		t.Errorf("NextEarningsDate = %v", data.NextEarningsDate)
	}
}
