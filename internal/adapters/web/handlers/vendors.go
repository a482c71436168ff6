package handlers

import (
	"log/slog"
	"net/http"

	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// VendorsHandler handles vendor catalog requests
type VendorsHandler struct {
	prices *usecases.PriceUseCase
	logger *slog.Logger
}

// NewVendorsHandler creates a new vendors handler
func NewVendorsHandler(prices *usecases.PriceUseCase, logger *slog.Logger) *VendorsHandler {
	return &VendorsHandler{
		prices: prices,
		logger: logger,
	}
}

type vendorsResponse struct {
	Success bool            `json:"success"`
	Vendors []models.Vendor `json:"vendors"`
	Total   int             `json:"total"`
}

// Handle handles GET /vendors
func (h *VendorsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	vendors := h.prices.Vendors()

	writeJSON(w, http.StatusOK, vendorsResponse{
		Success: true,
		Vendors: vendors,
		Total:   len(vendors),
	})
}
