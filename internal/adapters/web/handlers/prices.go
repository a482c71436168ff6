package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// PricesHandler handles price listing requests
type PricesHandler struct {
	prices *usecases.PriceUseCase
	logger *slog.Logger
}

// NewPricesHandler creates a new prices handler
func NewPricesHandler(prices *usecases.PriceUseCase, logger *slog.Logger) *PricesHandler {
	return &PricesHandler{
		prices: prices,
		logger: logger,
	}
}

type priceResponse struct {
	Success bool               `json:"success"`
	Data    []models.GoldPrice `json:"data"`
	Meta    Meta               `json:"meta"`
}

// Handle handles GET /prices with optional vendor/weight filters
func (h *PricesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	query := models.PriceQuery{
		Vendor: r.URL.Query().Get("vendor"),
	}

	var err error
	if query.Weight, err = floatParam(r, "weight"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if query.MinWeight, err = floatParam(r, "min_weight"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if query.MaxWeight, err = floatParam(r, "max_weight"); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := usecases.ValidateQuery(query); err != nil {
		writeError(w, h.logger, err)
		return
	}

	bypassCache := r.URL.Query().Get("no_cache") == "true"

	snapshot, cached, err := h.prices.Acquire(r.Context(), bypassCache)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	records := usecases.FilterPrices(snapshot, query)

	writeJSON(w, http.StatusOK, priceResponse{
		Success: true,
		Data:    records,
		Meta:    newMeta(snapshot.Source, snapshot.ScrapedAt, len(records), cached),
	})
}

func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &models.ValidationError{Reason: name + " must be a number"}
	}
	return &f, nil
}
