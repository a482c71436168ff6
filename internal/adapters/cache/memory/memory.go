package memory

import (
	"context"
	"sync"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// Adapter implements the SnapshotCache interface in process memory.
// The key space is the small fixed set of acquisition scopes, so
// there is no eviction beyond expiry: entries are superseded by the
// next Put or dropped by Clear.
type Adapter struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	snapshot  *models.Snapshot
	expiresAt time.Time
}

// New creates a new in-memory adapter
func New() *Adapter {
	return &Adapter{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the snapshot cached for a scope, or nil when absent or
// expired
func (a *Adapter) Get(ctx context.Context, scope string) (*models.Snapshot, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	e, ok := a.entries[scope]
	if !ok || !a.now().Before(e.expiresAt) {
		return nil, nil
	}
	return e.snapshot, nil
}

// Put replaces the entry for a scope. A ttl <= 0 means "never cache"
// and stores nothing.
func (a *Adapter) Put(ctx context.Context, scope string, snapshot *models.Snapshot, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries[scope] = entry{
		snapshot:  snapshot,
		expiresAt: a.now().Add(ttl),
	}
	return nil
}

// Clear removes the entry for a scope regardless of TTL
func (a *Adapter) Clear(ctx context.Context, scope string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.entries, scope)
	return nil
}

// ClearAll removes every cached entry
func (a *Adapter) ClearAll(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = make(map[string]entry)
	return nil
}

// Close is a no-op for the in-memory adapter
func (a *Adapter) Close() error {
	return nil
}
