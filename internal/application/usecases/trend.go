package usecases

import (
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

type pairKey struct {
	vendor string
	weight float64
}

// ComputeChanges pairs current records with their counterpart in the
// previous snapshot by (vendor, weight) and classifies the selling
// price movement. Records without a counterpart or without a selling
// price produce no change. ChangePercent stays nil when the previous
// price was zero; the trend is still classified from the delta.
func ComputeChanges(current, previous *models.Snapshot) []models.PriceChange {
	if current == nil || previous == nil {
		return nil
	}

	prev := make(map[pairKey]int64, len(previous.Records))
	for _, rec := range previous.Records {
		if rec.SellingPrice == nil {
			continue
		}
		prev[pairKey{rec.Vendor, rec.Weight}] = *rec.SellingPrice
	}

	var changes []models.PriceChange
	for _, rec := range current.Records {
		if rec.SellingPrice == nil {
			continue
		}
		previousPrice, ok := prev[pairKey{rec.Vendor, rec.Weight}]
		if !ok {
			continue
		}

		currentPrice := *rec.SellingPrice
		amount := currentPrice - previousPrice

		var percent *float64
		if previousPrice > 0 {
			p := float64(amount) / float64(previousPrice) * 100
			percent = &p
		}

		trend := models.TrendStable
		switch {
		case amount > 0:
			trend = models.TrendUp
		case amount < 0:
			trend = models.TrendDown
		}

		changes = append(changes, models.PriceChange{
			Vendor:        rec.Vendor,
			Weight:        rec.Weight,
			PriceDate:     rec.Date,
			PreviousPrice: previousPrice,
			CurrentPrice:  currentPrice,
			ChangeAmount:  amount,
			ChangePercent: percent,
			Trend:         trend,
		})
	}
	return changes
}

// Summarize counts a batch of changes per direction.
// Up+Down+Stable always equals Total equals len(changes).
func Summarize(changes []models.PriceChange) models.TrendSummary {
	s := models.TrendSummary{Total: len(changes)}
	for _, c := range changes {
		switch c.Trend {
		case models.TrendUp:
			s.Up++
		case models.TrendDown:
			s.Down++
		default:
			s.Stable++
		}
	}
	return s
}
