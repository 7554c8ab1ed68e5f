package history

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mamecholeye-lab/Rmam/pkg/cache"
)

func TestMemory_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(3)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		id := uuid.New()
		ids = append(ids, id)
		if err := m.Push(ctx, "ws", &cache.CachedDraw{EventID: id}); err != nil {
			t.Fatalf("push: %v", err)
		}
	}

	got, err := m.Recent(ctx, "ws", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i, want := range []uuid.UUID{ids[4], ids[3], ids[2]} {
		if got[i].EventID != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, got[i].EventID)
		}
	}
}

func TestMemory_Limit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)
	for i := 0; i < 4; i++ {
		_ = m.Push(ctx, "ws", &cache.CachedDraw{Requested: i})
	}

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 2, want: 2},
		{limit: 10, want: 4},
		{limit: 0, want: 0},
		{limit: -1, want: 0},
	}
	for _, tt := range tests {
		got, err := m.Recent(ctx, "ws", tt.limit)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(got) != tt.want {
			t.Errorf("limit %d: expected %d entries, got %d", tt.limit, tt.want, len(got))
		}
	}
}

func TestMemory_WorkspaceIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5)
	_ = m.Push(ctx, "a", &cache.CachedDraw{})
	_ = m.Push(ctx, "a", &cache.CachedDraw{})
	_ = m.Push(ctx, "b", &cache.CachedDraw{})

	if got, _ := m.Recent(ctx, "a", 5); len(got) != 2 {
		t.Errorf("expected a to hold 2 entries, got %d", len(got))
	}
	if got, _ := m.Recent(ctx, "b", 5); len(got) != 1 {
		t.Errorf("expected b to hold 1 entry, got %d", len(got))
	}
	if got, _ := m.Recent(ctx, "c", 5); len(got) != 0 {
		t.Errorf("expected c to be empty, got %d", len(got))
	}
}

func TestMemory_RecentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5)
	_ = m.Push(ctx, "ws", &cache.CachedDraw{Mode: "single"})

	got, _ := m.Recent(ctx, "ws", 5)
	got[0].Mode = "changed"

	again, _ := m.Recent(ctx, "ws", 5)
	if again[0].Mode != "single" {
		t.Fatalf("expected stored entry to be unaffected, got %q", again[0].Mode)
	}
}
