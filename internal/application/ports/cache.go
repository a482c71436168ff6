package ports

import (
	"context"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// SnapshotCache defines the interface for caching acquisition results
type SnapshotCache interface {
	// Get returns the snapshot cached for a scope, or nil when absent
	// or expired
	Get(ctx context.Context, scope string) (*models.Snapshot, error)

	// Put replaces the entry for a scope with the given TTL
	Put(ctx context.Context, scope string, snapshot *models.Snapshot, ttl time.Duration) error

	// Clear removes the entry for a scope regardless of TTL
	Clear(ctx context.Context, scope string) error

	// ClearAll removes every cached entry
	ClearAll(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}
