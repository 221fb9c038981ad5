package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scrapeSharesOutstanding extracts the share count from the Yahoo
// key-statistics page. Used only as a fallback when the JSON API omits
// sharesOutstanding for a ticker.
func (c *Client) scrapeSharesOutstanding(ctx context.Context, ticker string) (*float64, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/key-statistics", c.webBaseURL, ticker)

	resp, err := c.httpClient.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch key statistics page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse key statistics HTML: %w", err)
	}

	var shares *float64
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := strings.TrimSpace(row.Find("td").First().Text())
		if !strings.Contains(strings.ToLower(label), "shares outstanding") {
			return true
		}

		value := strings.TrimSpace(row.Find("td").Last().Text())
		if parsed, err := parseSuffixedNumber(value); err == nil {
			shares = &parsed
			return false
		}
		return true
	})

	if shares == nil {
		return nil, fmt.Errorf("shares outstanding not found on page for %s", ticker)
	}

	return shares, nil
}

// parseSuffixedNumber parses display figures like "16.82B", "452.3M" or
// "1,234.5" into a plain float.
func parseSuffixedNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "N/A" || s == "--" {
		return 0, fmt.Errorf("empty value")
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "T"):
		multiplier = 1e12
		s = strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "B"):
		multiplier = 1e9
		s = strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		multiplier = 1e6
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		multiplier = 1e3
		s = strings.TrimSuffix(s, "K")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}

	return v * multiplier, nil
}
