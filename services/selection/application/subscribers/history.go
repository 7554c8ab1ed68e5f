// Package subscribers holds the selection event handlers run by cmd/worker,
// or by cmd/api when events stay in-process.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
	collectionmodels "github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
	domainevents "github.com/mamecholeye-lab/Rmam/services/selection/domain/events"
)

// HandleSelectionDrawn returns a handler for selection.drawn events.
// Appends the draw to the workspace history. Redelivered events may appear twice.
func HandleSelectionDrawn(store appsvcs.HistoryStore, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt domainevents.SelectionDrawnEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode selection drawn: %w", err)
		}

		if err := store.Push(ctx, evt.Workspace, ToCachedDraw(evt)); err != nil {
			return fmt.Errorf("push history: %w", err)
		}

		log.DebugContext(ctx, "draw recorded",
			"workspace", evt.Workspace, "mode", evt.Mode, "event_id", evt.EventID)
		return nil
	}
}

// ToCachedDraw converts an event to a history entry.
func ToCachedDraw(evt domainevents.SelectionDrawnEvent) *cache.CachedDraw {
	sets := make([][]cache.CachedPick, len(evt.Sets))
	for i, set := range evt.Sets {
		sets[i] = toPicks(set)
	}
	return &cache.CachedDraw{
		EventID:   evt.EventID,
		Mode:      evt.Mode,
		Group:     evt.Group,
		Requested: evt.Requested,
		PoolSize:  evt.PoolSize,
		Sets:      sets,
		DrawnAt:   evt.OccurredAt,
	}
}

func toPicks(items []collectionmodels.Item) []cache.CachedPick {
	out := make([]cache.CachedPick, len(items))
	for i, it := range items {
		out[i] = cache.CachedPick{ID: it.ID, Name: it.Name, URL: it.URL, Group: it.Group}
	}
	return out
}

// Register subscribes the selection handlers on a.EventBus. store must be the
// history the selection service reads.
func Register(ctx context.Context, a *app.Application, store appsvcs.HistoryStore) error {
	errCh, err := a.EventBus.Subscribe(ctx, domainevents.TopicSelectionDrawn, HandleSelectionDrawn(store, a.Logger))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", domainevents.TopicSelectionDrawn,
				"error", err,
			)
			telemetry.CaptureSubscriberError(ctx, domainevents.TopicSelectionDrawn, err)
		}
	}()

	a.Logger.Info("event subscriber registered", "topic", domainevents.TopicSelectionDrawn)
	return nil
}
