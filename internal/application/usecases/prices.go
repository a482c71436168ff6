package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/masfaiz-code/track-emas-api/internal/application/ports"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// DefaultScope is the single acquisition scope: the whole upstream
// page, all vendors fetched together.
const DefaultScope = "galeri24"

// weightEpsilon absorbs float representation error on exact-weight
// matches.
const weightEpsilon = 1e-9

// PriceUseCase handles price acquisition and filtering
type PriceUseCase struct {
	source ports.PriceSource
	cache  ports.SnapshotCache
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewPriceUseCase creates a new PriceUseCase. A ttl <= 0 disables
// caching entirely: every acquisition goes upstream.
func NewPriceUseCase(source ports.PriceSource, cache ports.SnapshotCache, ttl time.Duration, logger *slog.Logger) *PriceUseCase {
	return &PriceUseCase{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Acquire returns the current snapshot, reusing the cached one while
// it is fresh. Concurrent cache misses for one scope are coalesced
// into a single upstream fetch; every waiting caller shares its
// result. The cached flag reports whether the snapshot came from the
// cache.
func (uc *PriceUseCase) Acquire(ctx context.Context, bypassCache bool) (*models.Snapshot, bool, error) {
	scope := DefaultScope
	useCache := uc.ttl > 0

	if useCache && !bypassCache {
		snap, err := uc.cache.Get(ctx, scope)
		if err != nil {
			uc.logger.Warn("Cache lookup failed, going upstream", "scope", scope, "error", err)
		} else if snap != nil {
			return snap, true, nil
		}
	}

	v, err, _ := uc.group.Do(scope, func() (interface{}, error) {
		raw, err := uc.source.Fetch(ctx, scope)
		if err != nil {
			return nil, err
		}

		snap, err := uc.source.Parse(raw, uc.now())
		if err != nil {
			return nil, err
		}

		if useCache {
			if err := uc.cache.Put(ctx, scope, snap, uc.ttl); err != nil {
				uc.logger.Warn("Cache store failed", "scope", scope, "error", err)
			}
		}

		uc.logger.Info("Acquired fresh snapshot",
			"scope", scope, "records", len(snap.Records), "warnings", snap.Warnings)
		return snap, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.(*models.Snapshot), false, nil
}

// Vendors returns the fixed vendor catalog.
func (uc *PriceUseCase) Vendors() []models.Vendor {
	return models.AvailableVendors()
}

// ClearCache drops every cached snapshot so the next acquisition goes
// upstream regardless of TTL.
func (uc *PriceUseCase) ClearCache(ctx context.Context) error {
	return uc.cache.ClearAll(ctx)
}

// ValidateQuery rejects malformed filter predicates before any
// acquisition happens.
func ValidateQuery(q models.PriceQuery) error {
	if q.Weight != nil && *q.Weight <= 0 {
		return &models.ValidationError{Reason: "weight must be positive"}
	}
	if q.MinWeight != nil && *q.MinWeight < 0 {
		return &models.ValidationError{Reason: "min_weight must not be negative"}
	}
	if q.MaxWeight != nil && *q.MaxWeight < 0 {
		return &models.ValidationError{Reason: "max_weight must not be negative"}
	}
	if q.MinWeight != nil && q.MaxWeight != nil && *q.MinWeight > *q.MaxWeight {
		return &models.ValidationError{
			Reason: fmt.Sprintf("min_weight %g exceeds max_weight %g", *q.MinWeight, *q.MaxWeight),
		}
	}
	return nil
}

// FilterPrices applies the predicate to a snapshot's records. The
// result keeps acquisition order; no match yields an empty slice, not
// an error.
func FilterPrices(snapshot *models.Snapshot, q models.PriceQuery) []models.GoldPrice {
	out := make([]models.GoldPrice, 0, len(snapshot.Records))
	for _, rec := range snapshot.Records {
		if q.Vendor != "" && !models.VendorMatches(q.Vendor, rec.Vendor) {
			continue
		}
		if q.Weight != nil && math.Abs(rec.Weight-*q.Weight) > weightEpsilon {
			continue
		}
		if q.MinWeight != nil && rec.Weight < *q.MinWeight {
			continue
		}
		if q.MaxWeight != nil && rec.Weight > *q.MaxWeight {
			continue
		}
		out = append(out, rec)
	}
	return out
}
