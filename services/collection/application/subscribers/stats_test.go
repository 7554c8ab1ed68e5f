package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgcache "github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	domainevents "github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

type memStats struct {
	entries map[string]*pkgcache.CachedStats
	err     error
}

func (m *memStats) Get(_ context.Context, ws string) (*pkgcache.CachedStats, error) {
	return m.entries[ws], nil
}

func (m *memStats) Set(_ context.Context, s *pkgcache.CachedStats) error {
	if m.err != nil {
		return m.err
	}
	m.entries[s.Workspace] = s
	return nil
}

func (m *memStats) Delete(_ context.Context, ws string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.entries, ws)
	return nil
}

func changeMessage(t *testing.T, reason string, total int) *message.Message {
	t.Helper()
	payload, err := json.Marshal(domainevents.CollectionChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Workspace:  "ws",
		Reason:     reason,
		Stats:      models.Stats{Total: total, Active: total, GroupCounts: []models.GroupCount{{Group: "default", Count: total}}},
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), payload)
}

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestHandleCollectionChanged_Warms(t *testing.T) {
	stats := &memStats{entries: map[string]*pkgcache.CachedStats{}}
	h := HandleCollectionChanged(stats, nopLogger())

	if err := h(context.Background(), changeMessage(t, domainevents.ReasonImported, 4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := stats.entries["ws"]
	if !ok || got.Total != 4 || len(got.GroupCounts) != 1 {
		t.Fatalf("expected warmed stats, got %+v", got)
	}
}

func TestHandleCollectionChanged_ClearDeletes(t *testing.T) {
	stats := &memStats{entries: map[string]*pkgcache.CachedStats{"ws": {Workspace: "ws", Total: 9}}}
	h := HandleCollectionChanged(stats, nopLogger())

	if err := h(context.Background(), changeMessage(t, domainevents.ReasonCleared, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stats.entries["ws"]; ok {
		t.Fatal("expected cleared workspace to be evicted")
	}
}

func TestHandleCollectionChanged_CacheErrorIsNotFatal(t *testing.T) {
	stats := &memStats{entries: map[string]*pkgcache.CachedStats{}, err: errors.New("redis down")}
	h := HandleCollectionChanged(stats, nopLogger())

	if err := h(context.Background(), changeMessage(t, domainevents.ReasonImported, 1)); err != nil {
		t.Fatalf("expected cache errors to be swallowed, got %v", err)
	}
}

func TestHandleCollectionChanged_BadPayload(t *testing.T) {
	h := HandleCollectionChanged(&memStats{entries: map[string]*pkgcache.CachedStats{}}, nopLogger())
	if err := h(context.Background(), message.NewMessage(watermill.NewUUID(), []byte("{"))); err == nil {
		t.Fatal("expected decode error")
	}
}
