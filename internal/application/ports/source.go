package ports

import (
	"context"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// PriceSource defines the interface for the upstream price page
type PriceSource interface {
	// Fetch downloads the raw page content for a scope
	Fetch(ctx context.Context, scope string) ([]byte, error)

	// Parse turns raw page content into a snapshot. Pure; no network
	// access
	Parse(raw []byte, now time.Time) (*models.Snapshot, error)

	// Name returns the source identifier reported in response metadata
	Name() string
}
