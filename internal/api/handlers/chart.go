package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/stockpulse/backend/internal/chart"
	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/pkg/logger"
)

// ChartHandler handles the price chart endpoint
type ChartHandler struct {
	yahoo  *yahoo.Client
	logger *logger.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(yahooClient *yahoo.Client, log *logger.Logger) *ChartHandler {
	return &ChartHandler{
		yahoo:  yahooClient,
		logger: log,
	}
}

// Generate returns a candlestick chart with moving averages as HTML
// GET /generate_stock_chart?ticker=AAPL&time_frame=1y
func (h *ChartHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	timeFrame := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("time_frame")))

	if ticker == "" || timeFrame == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameters: 'ticker' or 'time_frame'")
		return
	}

	tf, err := chart.ParseTimeFrame(timeFrame)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()

	// Fetch extra history so the long moving average is meaningful from
	// the first displayed bar.
	candles, err := h.yahoo.DailyHistory(r.Context(), ticker, tf.ExtendedStart(now), now)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to fetch price history")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(candles) == 0 {
		respondError(w, http.StatusInternalServerError, "Could not fetch data for "+ticker)
		return
	}

	series := chart.BuildSeries(candles, tf.Start(now))

	var buf bytes.Buffer
	if err := chart.Render(&buf, ticker, series); err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to render chart")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
