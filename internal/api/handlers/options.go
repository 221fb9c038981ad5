package handlers

import (
	"net/http"
	"strings"

	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/internal/report"
	"github.com/stockpulse/backend/pkg/logger"
)

// OptionsHandler handles the unusual options activity endpoint
type OptionsHandler struct {
	yahoo  *yahoo.Client
	logger *logger.Logger
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(yahooClient *yahoo.Client, log *logger.Logger) *OptionsHandler {
	return &OptionsHandler{
		yahoo:  yahooClient,
		logger: log,
	}
}

// GetUnusualActivity returns unusual options activity for the nearest
// expiration date
// GET /api/stocks/options?ticker=AAPL
func (h *OptionsHandler) GetUnusualActivity(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required!")
		return
	}

	chain, err := h.yahoo.NearestOptionChain(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to fetch option chain")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if chain == nil {
		respondError(w, http.StatusNotFound, "No options data available")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":          ticker,
		"expiration_date": chain.ExpirationDate.Format("2006-01-02"),
		"unusual_calls":   report.FilterUnusual(chain.Calls),
		"unusual_puts":    report.FilterUnusual(chain.Puts),
	})
}
