package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
)

// CacheHandler handles cache administration requests
type CacheHandler struct {
	prices *usecases.PriceUseCase
	logger *slog.Logger
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(prices *usecases.PriceUseCase, logger *slog.Logger) *CacheHandler {
	return &CacheHandler{
		prices: prices,
		logger: logger,
	}
}

// Handle handles POST /cache/clear; the next acquisition goes
// upstream regardless of TTL
func (h *CacheHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.prices.ClearCache(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("Cache cleared")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Cache cleared successfully",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
