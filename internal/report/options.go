package report

import "github.com/stockpulse/backend/internal/external/yahoo"

// unusualVolumeOIThreshold flags contracts trading at more than twice
// their open interest.
const unusualVolumeOIThreshold = 2.0

// UnusualContract is one contract with anomalous volume relative to its
// open interest.
type UnusualContract struct {
	ContractSymbol string  `json:"contractSymbol"`
	Strike         float64 `json:"strike"`
	LastPrice      float64 `json:"lastPrice"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"openInterest"`
	VolumeOIRatio  float64 `json:"volumeOIratio"`
}

// FilterUnusual returns the contracts whose volume / (open interest + 1)
// ratio exceeds the unusual-activity threshold. The +1 guards zero open
// interest.
func FilterUnusual(contracts []yahoo.OptionContract) []UnusualContract {
	unusual := []UnusualContract{}
	for _, c := range contracts {
		ratio := float64(c.Volume) / float64(c.OpenInterest+1)
		if ratio > unusualVolumeOIThreshold {
			unusual = append(unusual, UnusualContract{
				ContractSymbol: c.ContractSymbol,
				Strike:         c.Strike,
				LastPrice:      c.LastPrice,
				Volume:         c.Volume,
				OpenInterest:   c.OpenInterest,
				VolumeOIRatio:  ratio,
			})
		}
	}
	return unusual
}
