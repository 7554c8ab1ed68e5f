package subscribers

import (
	"context"

	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
	domainevents "github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
)

// Register subscribes the collection handlers on a.EventBus. Without Redis
// there is no read model to warm and nothing is subscribed.
func Register(ctx context.Context, a *app.Application) error {
	if a.Redis == nil {
		a.Logger.Info("stats cache disabled, skipping subscriber", "topic", domainevents.TopicCollectionChanged)
		return nil
	}

	errCh, err := a.EventBus.Subscribe(ctx, domainevents.TopicCollectionChanged,
		HandleCollectionChanged(cache.NewStatsCache(a.Redis), a.Logger))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", domainevents.TopicCollectionChanged,
				"error", err,
			)
			telemetry.CaptureSubscriberError(ctx, domainevents.TopicCollectionChanged, err)
		}
	}()

	a.Logger.Info("event subscriber registered", "topic", domainevents.TopicCollectionChanged)
	return nil
}
