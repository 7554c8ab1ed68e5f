// Package subscribers holds the collection event handlers run by cmd/worker,
// or by cmd/api when events stay in-process.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
	domainevents "github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
)

// HandleCollectionChanged returns a handler for collection.changed events.
// Handlers must be idempotent: EventBus retries up to 3× on failure.
// Warms the stats read model from the event so Stats calls are served from cache.
func HandleCollectionChanged(stats appsvcs.StatsCache, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt domainevents.CollectionChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode collection changed: %w", err)
		}

		var err error
		if evt.Reason == domainevents.ReasonCleared {
			err = stats.Delete(ctx, evt.Workspace)
		} else {
			err = stats.Set(ctx, appsvcs.StatsToCache(evt.Workspace, evt.Stats, evt.OccurredAt))
		}
		if err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			log.WarnContext(ctx, "stats cache warm failed",
				"workspace", evt.Workspace, "reason", evt.Reason, "error", err)
			return nil
		}

		log.DebugContext(ctx, "stats cache warmed",
			"workspace", evt.Workspace, "reason", evt.Reason, "total", evt.Stats.Total)
		return nil
	}
}
