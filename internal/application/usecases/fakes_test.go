package usecases

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func int64p(v int64) *int64 { return &v }

func record(vendor string, weight float64, selling int64) models.GoldPrice {
	return models.GoldPrice{
		Vendor:       vendor,
		Weight:       weight,
		Unit:         "gram",
		SellingPrice: int64p(selling),
		Date:         "2026-08-27",
	}
}

func snapshot(id string, records ...models.GoldPrice) *models.Snapshot {
	return &models.Snapshot{
		ID:        id,
		Source:    "galeri24.co.id",
		ScrapedAt: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		Records:   records,
	}
}

// fakeSource implements ports.PriceSource, counting fetches and
// optionally delaying them so coalescing can be observed.
type fakeSource struct {
	mu       sync.Mutex
	fetches  int
	delay    time.Duration
	fetchErr error
	parseErr error
	snap     *models.Snapshot
}

func (f *fakeSource) Fetch(ctx context.Context, scope string) ([]byte, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []byte("raw"), nil
}

func (f *fakeSource) Parse(raw []byte, now time.Time) (*models.Snapshot, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.snap, nil
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// fakeStore implements ports.HistoryStore over in-memory slices.
type fakeStore struct {
	mu        sync.Mutex
	snapshots []*models.Snapshot
	changes   []models.PriceChange
	saveErr   error
}

func (s *fakeStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s *fakeStore) LatestSnapshotBefore(ctx context.Context, day time.Time) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := day.Format("2006-01-02")
	var latest *models.Snapshot
	for _, snap := range s.snapshots {
		if len(snap.Records) == 0 || snap.Records[0].Date >= cutoff {
			continue
		}
		if latest == nil || snap.Records[0].Date > latest.Records[0].Date {
			latest = snap
		}
	}
	return latest, nil
}

func (s *fakeStore) SaveChanges(ctx context.Context, changes []models.PriceChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, changes...)
	return nil
}

func (s *fakeStore) Changes(ctx context.Context, q models.ChangeQuery) ([]models.PriceChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.PriceChange
	for _, c := range s.changes {
		if q.Vendor != "" && !strings.Contains(strings.ToUpper(c.Vendor), strings.ToUpper(q.Vendor)) {
			continue
		}
		if q.Trend != "" && c.Trend != q.Trend {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) History(ctx context.Context, q models.HistoryQuery) ([]models.GoldPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.GoldPrice
	for _, snap := range s.snapshots {
		out = append(out, snap.Records...)
	}
	return out, nil
}

func (s *fakeStore) TrendCounts(ctx context.Context, since time.Time) (models.TrendSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.changes), nil
}

func (s *fakeStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := cutoff.Format("2006-01-02")
	var deleted int64

	var keptSnaps []*models.Snapshot
	for _, snap := range s.snapshots {
		if len(snap.Records) > 0 && snap.Records[0].Date < day {
			deleted += int64(len(snap.Records))
			continue
		}
		keptSnaps = append(keptSnaps, snap)
	}
	s.snapshots = keptSnaps

	var keptChanges []models.PriceChange
	for _, c := range s.changes {
		if c.PriceDate < day {
			deleted++
			continue
		}
		keptChanges = append(keptChanges, c)
	}
	s.changes = keptChanges

	return deleted, nil
}

func (s *fakeStore) Close() error { return nil }
