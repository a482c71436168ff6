package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// Meta carries per-acquisition metadata on every data response.
type Meta struct {
	Source    string `json:"source"`
	ScrapedAt string `json:"scraped_at"`
	Total     int    `json:"total"`
	Cached    bool   `json:"cached"`
}

func newMeta(source string, scrapedAt time.Time, total int, cached bool) Meta {
	return Meta{
		Source:    source,
		ScrapedAt: scrapedAt.Format(time.RFC3339),
		Total:     total,
		Cached:    cached,
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses:
// validation 400, upstream fetch/parse 502, disabled history 503,
// everything else 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		validationErr *models.ValidationError
		fetchErr      *models.FetchError
		parseErr      *models.ParseError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrHistoryDisabled):
		status = http.StatusServiceUnavailable
	case errors.As(err, &fetchErr), errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}

	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}
