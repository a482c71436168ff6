package ports

import (
	"context"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// HistoryStore defines the interface for snapshot and change
// persistence. The store is optional: acquisition, caching and
// filtering work without one.
type HistoryStore interface {
	// SaveSnapshot persists the records of a snapshot
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// LatestSnapshotBefore returns the most recent persisted snapshot
	// strictly before the given day, or nil when none exists
	LatestSnapshotBefore(ctx context.Context, day time.Time) (*models.Snapshot, error)

	// SaveChanges persists computed price changes
	SaveChanges(ctx context.Context, changes []models.PriceChange) error

	// Changes retrieves persisted price changes
	Changes(ctx context.Context, q models.ChangeQuery) ([]models.PriceChange, error)

	// History retrieves persisted price records
	History(ctx context.Context, q models.HistoryQuery) ([]models.GoldPrice, error)

	// TrendCounts counts changes per direction since the given date
	TrendCounts(ctx context.Context, since time.Time) (models.TrendSummary, error)

	// DeleteOlderThan removes snapshots and changes dated strictly
	// before cutoff and returns the number of rows deleted
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Close closes the storage connection
	Close() error
}
