package memory

import (
	"context"
	"testing"
	"time"

	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

func testSnapshot(id string) *models.Snapshot {
	selling := int64(1850000)
	return &models.Snapshot{
		ID:        id,
		Source:    "galeri24.co.id",
		ScrapedAt: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		Records: []models.GoldPrice{
			{Vendor: "ANTAM", Weight: 1, Unit: "gram", SellingPrice: &selling, Date: "2026-08-27"},
		},
	}
}

func TestAdapter_GetHonorsTTL(t *testing.T) {
	adapter := New()

	current := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	adapter.now = func() time.Time { return current }

	ctx := context.Background()
	snap := testSnapshot("snap-1")

	if err := adapter.Put(ctx, "galeri24", snap, 300*time.Second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := adapter.Get(ctx, "galeri24")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.ID != "snap-1" {
		t.Fatalf("Expected snap-1 immediately after Put, got %v", got)
	}

	// One second before expiry the entry is still fresh.
	current = current.Add(299 * time.Second)
	got, err = adapter.Get(ctx, "galeri24")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected entry at ttl-1s, got absent")
	}

	// One second past expiry it is gone.
	current = current.Add(2 * time.Second)
	got, err = adapter.Get(ctx, "galeri24")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("Expected absent at ttl+1s, got %v", got.ID)
	}
}

func TestAdapter_ClearRemovesBeforeExpiry(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	if err := adapter.Put(ctx, "galeri24", testSnapshot("snap-1"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := adapter.Clear(ctx, "galeri24"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := adapter.Get(ctx, "galeri24")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatal("Expected absent after Clear despite live TTL")
	}
}

func TestAdapter_ClearAll(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	adapter.Put(ctx, "a", testSnapshot("snap-a"), time.Hour)
	adapter.Put(ctx, "b", testSnapshot("snap-b"), time.Hour)

	if err := adapter.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	for _, scope := range []string{"a", "b"} {
		got, err := adapter.Get(ctx, scope)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Fatalf("Expected scope %q empty after ClearAll", scope)
		}
	}
}

func TestAdapter_ZeroTTLStoresNothing(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	if err := adapter.Put(ctx, "galeri24", testSnapshot("snap-1"), 0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := adapter.Get(ctx, "galeri24")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatal("Expected nothing stored for ttl <= 0")
	}
}

func TestAdapter_PutReplacesEntry(t *testing.T) {
	adapter := New()
	ctx := context.Background()

	adapter.Put(ctx, "galeri24", testSnapshot("snap-1"), time.Hour)
	adapter.Put(ctx, "galeri24", testSnapshot("snap-2"), time.Hour)

	got, err := adapter.Get(ctx, "galeri24")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.ID != "snap-2" {
		t.Fatalf("Expected snap-2 after replacement, got %v", got)
	}
}
