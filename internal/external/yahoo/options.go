package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// OptionContract is one listed option contract
type OptionContract struct {
	ContractSymbol string  `json:"contractSymbol"`
	Strike         float64 `json:"strike"`
	LastPrice      float64 `json:"lastPrice"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"openInterest"`
}

// OptionChain is the calls/puts chain for a single expiration
type OptionChain struct {
	ExpirationDate time.Time
	Calls          []OptionContract
	Puts           []OptionContract
}

type optionsEnvelope struct {
	OptionChain struct {
		Result []struct {
			Options []struct {
				ExpirationDate int64            `json:"expirationDate"`
				Calls          []OptionContract `json:"calls"`
				Puts           []OptionContract `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"optionChain"`
}

// NearestOptionChain fetches the option chain for the nearest expiration
// date. A nil chain means the ticker has no listed options.
func (c *Client) NearestOptionChain(ctx context.Context, ticker string) (*OptionChain, error) {
	fullURL := fmt.Sprintf("%s/v7/finance/options/%s", c.baseURL, url.PathEscape(ticker))

	var envelope optionsEnvelope
	if err := c.httpClient.GetJSON(ctx, fullURL, &envelope); err != nil {
		return nil, fmt.Errorf("options request failed: %w", err)
	}

	if envelope.OptionChain.Error != nil {
		return nil, fmt.Errorf("options error for %s: %s", ticker, envelope.OptionChain.Error.Description)
	}

	if len(envelope.OptionChain.Result) == 0 || len(envelope.OptionChain.Result[0].Options) == 0 {
		return nil, nil
	}

	// The API returns the nearest expiration first
	nearest := envelope.OptionChain.Result[0].Options[0]

	return &OptionChain{
		ExpirationDate: time.Unix(nearest.ExpirationDate, 0).UTC(),
		Calls:          nearest.Calls,
		Puts:           nearest.Puts,
	}, nil
}
