package store

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/studyplan/internal/models"
)

func TestMemoryAnalytics_LatestPrefersNewestSave(t *testing.T) {
	mem := NewMemory()
	repo := mem.Analytics()
	ctx := context.Background()

	// Consecutive saves can share a clock reading; the later save must
	// still win or its counters are lost on the next load.
	at := time.Date(2026, time.August, 3, 12, 0, 0, 0, time.Local)
	first := &models.Analytics{OwnerID: "u1", TotalSlots: 1, GeneratedAt: at}
	second := &models.Analytics{OwnerID: "u1", TotalSlots: 2, GeneratedAt: at}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := repo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.TotalSlots != 2 {
		t.Errorf("Latest returned the stale rollup: TotalSlots = %d, want 2", got.TotalSlots)
	}
}

func TestMemoryAnalytics_LatestScopedToOwner(t *testing.T) {
	mem := NewMemory()
	repo := mem.Analytics()
	ctx := context.Background()

	a := &models.Analytics{OwnerID: "u1", TotalSlots: 3, GeneratedAt: time.Now()}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := repo.Latest(ctx, "u2"); err != ErrNotFound {
		t.Errorf("Latest for other owner = %v, want ErrNotFound", err)
	}
}
