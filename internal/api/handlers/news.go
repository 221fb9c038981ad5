package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/internal/report"
	"github.com/stockpulse/backend/pkg/logger"
)

// NewsHandler handles the stock news endpoint
type NewsHandler struct {
	yahoo  *yahoo.Client
	logger *logger.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(yahooClient *yahoo.Client, log *logger.Logger) *NewsHandler {
	return &NewsHandler{
		yahoo:  yahooClient,
		logger: log,
	}
}

// GetNews returns the latest news articles for a stock
// GET /api/get_stock_news?ticker=AAPL
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required!")
		return
	}

	items, err := h.yahoo.News(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to fetch news")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve news")
		return
	}

	if len(items) == 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"message": fmt.Sprintf("No news found for %s.", ticker),
		})
		return
	}

	respondJSON(w, http.StatusOK, report.NewsArticles(items))
}
