package handlers

import (
	"net/http"
	"strings"

	"github.com/stockpulse/backend/internal/dcf"
	"github.com/stockpulse/backend/pkg/logger"
)

// ValuationHandler handles the DCF valuation endpoint
type ValuationHandler struct {
	runner *dcf.Runner
	logger *logger.Logger
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(runner *dcf.Runner, log *logger.Logger) *ValuationHandler {
	return &ValuationHandler{
		runner: runner,
		logger: log,
	}
}

// GetDCF returns the DCF valuation for a stock
// GET /api/get_dcf?ticker=AAPL
func (h *ValuationHandler) GetDCF(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker symbol is required")
		return
	}

	// Failures come back inside the structured result, not as HTTP errors
	result := h.runner.Run(r.Context(), ticker)

	respondJSON(w, http.StatusOK, result)
}
