// Package persistencetest runs the same behavioural checks against every
// snapshot store.
package persistencetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
)

// Recorder is a persistence.Publisher that keeps every published message.
type Recorder struct {
	mu     sync.Mutex
	Topics []string
	Msgs   []*message.Message
}

// Publish records msgs under topic.
func (r *Recorder) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.Topics = append(r.Topics, topic)
		r.Msgs = append(r.Msgs, m)
	}
	return nil
}

// Len returns the number of recorded messages.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Msgs)
}

// Factory opens a fresh store publishing to pub.
type Factory func(t *testing.T, pub persistence.Publisher) repositories.SnapshotRepository

// Change builds a change event for workspace.
func Change(workspace, reason string) *events.CollectionChangedEvent {
	return &events.CollectionChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Workspace:  workspace,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}

// Sample returns a two-item snapshot.
func Sample() *models.Snapshot {
	return &models.Snapshot{
		Websites: []models.Item{
			{ID: 1, Name: "a", URL: "https://a.example", Group: "G1", Status: models.StatusActive},
			{ID: 2, Name: "b", URL: "#", Group: models.DefaultGroup, Status: models.StatusActive},
		},
		Groups:    []string{"G1"},
		Timestamp: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

// Run exercises newRepo. Workspace names are unique per run so shared
// backends can be used.
func Run(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("load missing returns not found", func(t *testing.T) {
		repo := newRepo(t, nil)
		_, err := repo.Load(ctx, uuid.NewString())
		if !errors.Is(err, repositories.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("save then load is lossless", func(t *testing.T) {
		repo := newRepo(t, nil)
		ws := uuid.NewString()
		want := Sample()

		if err := repo.Save(ctx, ws, want, nil); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := repo.Load(ctx, ws)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(got.Websites) != len(want.Websites) {
			t.Fatalf("expected %d items, got %d", len(want.Websites), len(got.Websites))
		}
		for i := range want.Websites {
			if got.Websites[i] != want.Websites[i] {
				t.Errorf("item %d: expected %+v, got %+v", i, want.Websites[i], got.Websites[i])
			}
		}
		if len(got.Groups) != 1 || got.Groups[0] != "G1" {
			t.Errorf("expected groups [G1], got %v", got.Groups)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("expected timestamp %v, got %v", want.Timestamp, got.Timestamp)
		}
	})

	t.Run("save overwrites", func(t *testing.T) {
		repo := newRepo(t, nil)
		ws := uuid.NewString()
		if err := repo.Save(ctx, ws, Sample(), nil); err != nil {
			t.Fatalf("save: %v", err)
		}
		empty := &models.Snapshot{Websites: []models.Item{}, Groups: []string{"only"}}
		if err := repo.Save(ctx, ws, empty, nil); err != nil {
			t.Fatalf("second save: %v", err)
		}
		got, err := repo.Load(ctx, ws)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(got.Websites) != 0 || len(got.Groups) != 1 || got.Groups[0] != "only" {
			t.Fatalf("expected last write to win, got %+v", got)
		}
	})

	t.Run("workspaces are isolated", func(t *testing.T) {
		repo := newRepo(t, nil)
		a, b := uuid.NewString(), uuid.NewString()
		if err := repo.Save(ctx, a, Sample(), nil); err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, err := repo.Load(ctx, b); !errors.Is(err, repositories.ErrSnapshotNotFound) {
			t.Fatalf("expected other workspace to be empty, got %v", err)
		}
	})

	t.Run("delete removes and tolerates missing", func(t *testing.T) {
		repo := newRepo(t, nil)
		ws := uuid.NewString()
		if err := repo.Save(ctx, ws, Sample(), nil); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := repo.Delete(ctx, ws, nil); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.Load(ctx, ws); !errors.Is(err, repositories.ErrSnapshotNotFound) {
			t.Fatalf("expected not found after delete, got %v", err)
		}
		if err := repo.Delete(ctx, ws, nil); err != nil {
			t.Fatalf("second delete: %v", err)
		}
	})

	t.Run("writes publish change events", func(t *testing.T) {
		rec := &Recorder{}
		repo := newRepo(t, rec)
		ws := uuid.NewString()

		if err := repo.Save(ctx, ws, Sample(), Change(ws, events.ReasonImported)); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := repo.Delete(ctx, ws, Change(ws, events.ReasonCleared)); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if rec.Len() != 2 {
			t.Fatalf("expected 2 published messages, got %d", rec.Len())
		}
		for _, topic := range rec.Topics {
			if topic != events.TopicCollectionChanged {
				t.Errorf("expected topic %q, got %q", events.TopicCollectionChanged, topic)
			}
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := newRepo(t, nil).Ping(ctx); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
