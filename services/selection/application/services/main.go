package services

import (
	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/services/selection/infrastructure/history"
	"github.com/mamecholeye-lab/Rmam/services/selection/infrastructure/random"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Selection *SelectionService
	// History is shared with the selection.drawn subscriber.
	History HistoryStore
}

// New wires the selection services. Draw pools come from items (the
// collection service). History lives in Redis when configured, in process
// memory otherwise.
func New(a *app.Application, items ItemSource) (*Services, error) {
	src, err := random.New(a.Config.RandomSource, a.Config.RandomSeed)
	if err != nil {
		return nil, err
	}

	var store HistoryStore
	if a.Redis != nil {
		store = cache.NewHistoryCache(a.Redis, a.Config.HistoryLimit)
	} else {
		store = history.NewMemory(a.Config.HistoryLimit)
	}

	var pub Publisher
	if a.EventBus != nil {
		pub = a.EventBus
	}

	return &Services{
		Selection: NewSelectionService(src, items, store, a.Config.HistoryLimit, pub, a.Metrics, a.Logger),
		History:   store,
	}, nil
}
