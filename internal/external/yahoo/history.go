package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Candle is one daily OHLCV bar
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// DailyHistory fetches daily bars for ticker between from and to.
// Days with null quotes (halts, partial sessions) are skipped.
func (c *Client) DailyHistory(ctx context.Context, ticker string, from, to time.Time) ([]Candle, error) {
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(from.Unix(), 10))
	params.Set("period2", strconv.FormatInt(to.Unix(), 10))
	params.Set("interval", "1d")
	params.Set("events", "history")

	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		c.baseURL, url.PathEscape(ticker), params.Encode())

	var envelope chartEnvelope
	if err := c.httpClient.GetJSON(ctx, fullURL, &envelope); err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}

	if envelope.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", ticker, envelope.Chart.Error.Description)
	}

	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := envelope.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	candles := make([]Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil ||
			quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil {
			continue
		}

		candle := Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}

		candles = append(candles, candle)
	}

	return candles, nil
}
