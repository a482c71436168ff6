package handlers

import (
	"log/slog"
	"net/http"

	"github.com/masfaiz-code/track-emas-api/internal/adapters/source/galeri24"
	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
)

// InfoHandler handles service info requests
type InfoHandler struct {
	history *usecases.HistoryUseCase
	logger  *slog.Logger
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(history *usecases.HistoryUseCase, logger *slog.Logger) *InfoHandler {
	return &InfoHandler{
		history: history,
		logger:  logger,
	}
}

type infoResponse struct {
	AppName        string            `json:"app_name"`
	Version        string            `json:"version"`
	Status         string            `json:"status"`
	Description    string            `json:"description"`
	Source         string            `json:"source"`
	HistoryEnabled bool              `json:"history_enabled"`
	Endpoints      map[string]string `json:"endpoints"`
}

// Handle handles GET /info
func (h *InfoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		AppName:        "Track Emas API",
		Version:        "2.0.0",
		Status:         "running",
		Description:    "REST API for current gold prices from Galeri24 with day-over-day change tracking",
		Source:         galeri24.SourceName,
		HistoryEnabled: h.history.Enabled(),
		Endpoints: map[string]string{
			"GET /info":           "Service information",
			"GET /health":         "Health check",
			"GET /prices":         "Gold prices with optional filters",
			"GET /prices/changes": "Price changes (up/down/stable)",
			"GET /prices/history": "Price history",
			"GET /prices/trend":   "Trend summary",
			"POST /prices/sync":   "Sync prices to the store",
			"GET /vendors":        "Available vendors",
			"POST /cache/clear":   "Clear the price cache",
			"GET /feed/rss":       "RSS feed of current prices",
		},
	})
}
