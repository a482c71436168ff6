package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/application/ports"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// HistoryUseCase handles snapshot persistence, day-over-day changes
// and retention. The store may be nil; every operation then reports
// ErrHistoryDisabled while the acquisition path stays untouched.
type HistoryUseCase struct {
	prices        *PriceUseCase
	store         ports.HistoryStore
	retentionDays int
	logger        *slog.Logger
	now           func() time.Time
}

// NewHistoryUseCase creates a new HistoryUseCase
func NewHistoryUseCase(prices *PriceUseCase, store ports.HistoryStore, retentionDays int, logger *slog.Logger) *HistoryUseCase {
	return &HistoryUseCase{
		prices:        prices,
		store:         store,
		retentionDays: retentionDays,
		logger:        logger,
		now:           time.Now,
	}
}

// Enabled reports whether a persistence backend is configured.
func (uc *HistoryUseCase) Enabled() bool {
	return uc.store != nil
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Saved   int   `json:"saved"`
	Changes int   `json:"changes"`
	Deleted int64 `json:"deleted"`
}

// Sync acquires a fresh snapshot, persists it, records changes
// against the latest prior snapshot and enforces the retention
// horizon. Meant to be triggered by an external scheduler.
func (uc *HistoryUseCase) Sync(ctx context.Context) (*SyncResult, error) {
	if uc.store == nil {
		return nil, models.ErrHistoryDisabled
	}

	snapshot, _, err := uc.prices.Acquire(ctx, true)
	if err != nil {
		return nil, err
	}

	today := uc.now()
	previous, err := uc.store.LatestSnapshotBefore(ctx, today)
	if err != nil {
		return nil, err
	}

	if err := uc.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	changes := ComputeChanges(snapshot, previous)
	if len(changes) > 0 {
		if err := uc.store.SaveChanges(ctx, changes); err != nil {
			return nil, err
		}
	}

	deleted, err := uc.Sweep(ctx, today, uc.retentionDays)
	if err != nil {
		// Retention is enforced again on the next run.
		uc.logger.Warn("Retention sweep failed", "error", err)
		deleted = 0
	}

	uc.logger.Info("Synced snapshot to store",
		"saved", len(snapshot.Records), "changes", len(changes), "deleted", deleted)

	return &SyncResult{
		Saved:   len(snapshot.Records),
		Changes: len(changes),
		Deleted: deleted,
	}, nil
}

// Changes returns persisted price changes with their direction
// summary.
func (uc *HistoryUseCase) Changes(ctx context.Context, q models.ChangeQuery) ([]models.PriceChange, models.TrendSummary, error) {
	if uc.store == nil {
		return nil, models.TrendSummary{}, models.ErrHistoryDisabled
	}
	if q.Day.IsZero() {
		q.Day = uc.now()
	}

	changes, err := uc.store.Changes(ctx, q)
	if err != nil {
		return nil, models.TrendSummary{}, err
	}
	return changes, Summarize(changes), nil
}

// History returns persisted price records for the last q.Days days.
func (uc *HistoryUseCase) History(ctx context.Context, q models.HistoryQuery) ([]models.GoldPrice, error) {
	if uc.store == nil {
		return nil, models.ErrHistoryDisabled
	}
	if q.Days <= 0 {
		q.Days = 7
	}
	return uc.store.History(ctx, q)
}

// TrendSummary counts persisted changes per direction over the last
// days.
func (uc *HistoryUseCase) TrendSummary(ctx context.Context, days int) (models.TrendSummary, error) {
	if uc.store == nil {
		return models.TrendSummary{}, models.ErrHistoryDisabled
	}
	if days <= 0 {
		days = 7
	}
	since := uc.now().AddDate(0, 0, -days)
	return uc.store.TrendCounts(ctx, since)
}

// Sweep deletes persisted snapshots and changes dated strictly older
// than now minus horizonDays. Idempotent: a second run with no new
// data deletes nothing.
func (uc *HistoryUseCase) Sweep(ctx context.Context, now time.Time, horizonDays int) (int64, error) {
	if uc.store == nil {
		return 0, models.ErrHistoryDisabled
	}
	cutoff := now.AddDate(0, 0, -horizonDays)
	return uc.store.DeleteOlderThan(ctx, cutoff)
}
