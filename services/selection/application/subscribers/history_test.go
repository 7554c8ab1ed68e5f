package subscribers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	collectionmodels "github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	domainevents "github.com/mamecholeye-lab/Rmam/services/selection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/selection/infrastructure/history"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func drawnEvent() domainevents.SelectionDrawnEvent {
	return domainevents.SelectionDrawnEvent{
		EventID:   uuid.New(),
		Version:   1,
		Workspace: "ws",
		Mode:      "batch",
		Group:     "A",
		Requested: 2,
		PoolSize:  4,
		Sets: [][]collectionmodels.Item{{
			{ID: 3, Name: "c", URL: "u3", Group: "A", Status: collectionmodels.StatusActive},
			{ID: 1, Name: "a", URL: "u1", Group: "A", Status: collectionmodels.StatusActive},
		}},
		Draws:      3,
		OccurredAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestToCachedDraw(t *testing.T) {
	evt := drawnEvent()
	d := ToCachedDraw(evt)

	if d.EventID != evt.EventID || d.Mode != "batch" || d.Group != "A" || d.Requested != 2 || d.PoolSize != 4 {
		t.Fatalf("unexpected entry: %+v", d)
	}
	if len(d.Sets) != 1 || len(d.Sets[0]) != 2 || d.Sets[0][0].ID != 3 || d.Sets[0][1].URL != "u1" {
		t.Fatalf("unexpected sets: %+v", d.Sets)
	}
	if !d.DrawnAt.Equal(evt.OccurredAt) {
		t.Errorf("expected drawn_at %v, got %v", evt.OccurredAt, d.DrawnAt)
	}
}

func TestHandleSelectionDrawn(t *testing.T) {
	store := history.NewMemory(5)
	h := HandleSelectionDrawn(store, nopLogger())

	payload, err := json.Marshal(drawnEvent())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := h(context.Background(), message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := store.Recent(context.Background(), "ws", 5)
	if len(got) != 1 || got[0].Mode != "batch" {
		t.Fatalf("expected one recorded draw, got %+v", got)
	}
}

func TestHandleSelectionDrawn_BadPayload(t *testing.T) {
	h := HandleSelectionDrawn(history.NewMemory(5), nopLogger())
	if err := h(context.Background(), message.NewMessage(watermill.NewUUID(), []byte("nope"))); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHandleSelectionDrawn_ViaInMemoryBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewInMemoryEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck

	store := history.NewMemory(5)
	if _, err := bus.Subscribe(ctx, domainevents.TopicSelectionDrawn, HandleSelectionDrawn(store, nopLogger())); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	evt := drawnEvent()
	msg, err := events.NewMessage(evt.EventID, evt.Version, evt)
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if err := bus.Publish(ctx, domainevents.TopicSelectionDrawn, msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, _ := store.Recent(ctx, "ws", 5); len(got) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected the draw to reach the history store")
}
