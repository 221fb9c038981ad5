package handlers

import (
	"net/http"
	"strings"

	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/internal/report"
	"github.com/stockpulse/backend/pkg/logger"
)

// EarningsHandler handles the earnings endpoint
type EarningsHandler struct {
	yahoo  *yahoo.Client
	logger *logger.Logger
}

// NewEarningsHandler creates a new earnings handler
func NewEarningsHandler(yahooClient *yahoo.Client, log *logger.Logger) *EarningsHandler {
	return &EarningsHandler{
		yahoo:  yahooClient,
		logger: log,
	}
}

// GetEarnings returns quarterly earnings data for a stock
// GET /api/earnings?ticker=AAPL
func (h *EarningsHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker symbol is required")
		return
	}

	data, err := h.yahoo.Earnings(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to fetch earnings")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve earnings")
		return
	}

	respondJSON(w, http.StatusOK, report.BuildEarningsReport(data))
}
