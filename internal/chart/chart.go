package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/stockpulse/backend/internal/external/yahoo"
)

// maHeadroomDays is the extra history fetched before the requested range
// so the 200-day moving average has data to warm up on.
const maHeadroomDays = 200

// TimeFrame is a supported chart lookback window
type TimeFrame struct {
	Label string
	Days  int
}

var timeFrames = map[string]TimeFrame{
	"3m": {Label: "3m", Days: 90},
	"6m": {Label: "6m", Days: 180},
	"1y": {Label: "1y", Days: 365},
	"5y": {Label: "5y", Days: 365 * 5},
}

// ParseTimeFrame resolves a user-supplied time frame string
func ParseTimeFrame(s string) (TimeFrame, error) {
	tf, ok := timeFrames[s]
	if !ok {
		return TimeFrame{}, fmt.Errorf("invalid time frame %q: use 3m, 6m, 1y, or 5y", s)
	}
	return tf, nil
}

// Start returns the beginning of the display window relative to now
func (tf TimeFrame) Start(now time.Time) time.Time {
	return now.AddDate(0, 0, -tf.Days)
}

// ExtendedStart returns the fetch window start including MA headroom
func (tf TimeFrame) ExtendedStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -(tf.Days + maHeadroomDays))
}

// Series is chart-ready data: aligned dates, OHLC values and derived
// moving averages, trimmed to the display window.
type Series struct {
	Dates  []string
	OHLC   [][4]float64 // open, close, low, high per echarts convention
	MA50   []float64
	MA200  []float64
	Volume []int64
}

// BuildSeries computes 50/200-day moving averages over the full candle
// history, then trims everything to bars on or after start. Windows
// shorter than the MA period average whatever is available.
func BuildSeries(candles []yahoo.Candle, start time.Time) *Series {
	ma50 := rollingMean(candles, 50)
	ma200 := rollingMean(candles, 200)

	s := &Series{}
	for i, candle := range candles {
		if candle.Date.Before(start) {
			continue
		}
		s.Dates = append(s.Dates, candle.Date.Format("2006-01-02"))
		s.OHLC = append(s.OHLC, [4]float64{candle.Open, candle.Close, candle.Low, candle.High})
		s.MA50 = append(s.MA50, ma50[i])
		s.MA200 = append(s.MA200, ma200[i])
		s.Volume = append(s.Volume, candle.Volume)
	}

	return s
}

// rollingMean computes a trailing mean of closes with min-periods-1
// semantics: early bars average over however much history exists.
func rollingMean(candles []yahoo.Candle, window int) []float64 {
	means := make([]float64, len(candles))
	sum := 0.0
	for i, candle := range candles {
		sum += candle.Close
		if i >= window {
			sum -= candles[i-window].Close
		}
		n := i + 1
		if n > window {
			n = window
		}
		means[i] = sum / float64(n)
	}
	return means
}

// Render writes a standalone HTML page with the candlestick chart, the
// moving-average overlays and a volume pane.
func Render(w io.Writer, ticker string, s *Series) error {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Stock Price Chart", ticker)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
	)

	klineData := make([]opts.KlineData, len(s.OHLC))
	for i, v := range s.OHLC {
		klineData[i] = opts.KlineData{Value: v}
	}
	kline.SetXAxis(s.Dates).AddSeries("OHLC", klineData)

	ma50 := charts.NewLine()
	ma50Data := make([]opts.LineData, len(s.MA50))
	for i, v := range s.MA50 {
		ma50Data[i] = opts.LineData{Value: v}
	}
	ma50.SetXAxis(s.Dates).AddSeries("50-day MA", ma50Data)

	ma200 := charts.NewLine()
	ma200Data := make([]opts.LineData, len(s.MA200))
	for i, v := range s.MA200 {
		ma200Data[i] = opts.LineData{Value: v}
	}
	ma200.SetXAxis(s.Dates).AddSeries("200-day MA", ma200Data)

	kline.Overlap(ma50, ma200)

	volume := charts.NewBar()
	volume.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Volume"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "300px"}),
	)
	volumeData := make([]opts.BarData, len(s.Volume))
	for i, v := range s.Volume {
		volumeData[i] = opts.BarData{Value: v}
	}
	volume.SetXAxis(s.Dates).AddSeries("Volume", volumeData)

	page := components.NewPage()
	page.AddCharts(kline, volume)

	return page.Render(w)
}
