package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/masfaiz-code/track-emas-api/internal/adapters/source/galeri24"
	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
)

// FeedHandler renders the current snapshot as an RSS feed for feed
// readers and automation tools
type FeedHandler struct {
	prices *usecases.PriceUseCase
	logger *slog.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(prices *usecases.PriceUseCase, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		prices: prices,
		logger: logger,
	}
}

// Handle handles GET /feed/rss
func (h *FeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	snapshot, _, err := h.prices.Acquire(r.Context(), false)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	feed := &feeds.Feed{
		Title:       "Track Emas - Harga Emas Terkini",
		Description: "Daily gold price updates from Galeri24",
		Link:        &feeds.Link{Href: galeri24.DefaultURL},
		Created:     snapshot.ScrapedAt,
	}

	for _, rec := range snapshot.Records {
		anchor := strings.ToLower(strings.ReplaceAll(rec.Vendor, " ", "-"))

		feed.Items = append(feed.Items, &feeds.Item{
			Title: fmt.Sprintf("%s %sg - %s", rec.Vendor, formatWeight(rec.Weight), formatRupiah(rec.SellingPrice)),
			Link:  &feeds.Link{Href: fmt.Sprintf("%s#%s-%s", galeri24.DefaultURL, anchor, formatWeight(rec.Weight))},
			Id:    fmt.Sprintf("track-emas-%s-%s-%s", rec.Vendor, formatWeight(rec.Weight), rec.Date),
			Description: fmt.Sprintf("Vendor: %s | Berat: %s gram | Harga Jual: %s | Harga Buyback: %s | Tanggal: %s",
				rec.Vendor, formatWeight(rec.Weight), formatRupiah(rec.SellingPrice), formatRupiah(rec.BuybackPrice), rec.Date),
			Created: itemDate(rec.Date, snapshot.ScrapedAt),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func formatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}

// formatRupiah renders a price in the Indonesian convention,
// Rp 1.234.567, or "-" for absent figures.
func formatRupiah(price *int64) string {
	if price == nil {
		return "-"
	}

	digits := strconv.FormatInt(*price, 10)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return "Rp " + b.String()
}

func itemDate(date string, fallback time.Time) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fallback
	}
	return t
}
