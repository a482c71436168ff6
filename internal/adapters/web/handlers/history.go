package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/adapters/source/galeri24"
	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// maxHistoryDays bounds history and trend lookbacks.
const maxHistoryDays = 90

// HistoryHandler handles change, history, trend and sync requests,
// all backed by the optional persistence subsystem.
type HistoryHandler struct {
	history *usecases.HistoryUseCase
	logger  *slog.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *usecases.HistoryUseCase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

type changesResponse struct {
	Success bool                 `json:"success"`
	Data    []models.PriceChange `json:"data"`
	Summary models.TrendSummary  `json:"summary"`
	Meta    Meta                 `json:"meta"`
}

// Changes handles GET /prices/changes
func (h *HistoryHandler) Changes(w http.ResponseWriter, r *http.Request) {
	query := models.ChangeQuery{
		Vendor: r.URL.Query().Get("vendor"),
		Trend:  models.Trend(r.URL.Query().Get("trend")),
	}

	changes, summary, err := h.history.Changes(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if changes == nil {
		changes = []models.PriceChange{}
	}

	writeJSON(w, http.StatusOK, changesResponse{
		Success: true,
		Data:    changes,
		Summary: summary,
		Meta:    newMeta(galeri24.SourceName, time.Now(), len(changes), false),
	})
}

type historyResponse struct {
	Success bool               `json:"success"`
	Data    []models.GoldPrice `json:"data"`
	Meta    Meta               `json:"meta"`
}

// History handles GET /prices/history
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	days, err := daysParam(r, 7)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	query := models.HistoryQuery{
		Vendor: r.URL.Query().Get("vendor"),
		Days:   days,
	}
	if query.Weight, err = floatParam(r, "weight"); err != nil {
		writeError(w, h.logger, err)
		return
	}

	records, err := h.history.History(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if records == nil {
		records = []models.GoldPrice{}
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Success: true,
		Data:    records,
		Meta:    newMeta(galeri24.SourceName, time.Now(), len(records), false),
	})
}

type trendResponse struct {
	Success    bool                `json:"success"`
	Summary    models.TrendSummary `json:"summary"`
	PeriodDays int                 `json:"period_days"`
}

// Trend handles GET /prices/trend
func (h *HistoryHandler) Trend(w http.ResponseWriter, r *http.Request) {
	days, err := daysParam(r, 7)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	summary, err := h.history.TrendSummary(r.Context(), days)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, trendResponse{
		Success:    true,
		Summary:    summary,
		PeriodDays: days,
	})
}

type syncResponse struct {
	Success   bool   `json:"success"`
	Saved     int    `json:"saved"`
	Changes   int    `json:"changes"`
	Deleted   int64  `json:"deleted"`
	Timestamp string `json:"timestamp"`
}

// Sync handles POST /prices/sync, meant for an external scheduler
func (h *HistoryHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.history.Sync(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Success:   true,
		Saved:     result.Saved,
		Changes:   result.Changes,
		Deleted:   result.Deleted,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func daysParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ValidationError{Reason: "days must be a positive integer"}
	}
	if days < 1 || days > maxHistoryDays {
		return 0, &models.ValidationError{Reason: "days must be between 1 and 90"}
	}
	return days, nil
}
