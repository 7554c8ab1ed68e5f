package services

import (
	"fmt"

	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence/memory"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence/postgres"
	redisstore "github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence/redis"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence/sqlite"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Collection *CollectionService
}

// New wires all collection application services with infrastructure from the
// Application container. The snapshot store follows STORE_BACKEND; the stats
// cache is enabled when Redis is configured.
func New(a *app.Application) (*Services, error) {
	repo, err := NewRepository(a)
	if err != nil {
		return nil, err
	}
	var stats StatsCache
	if a.Redis != nil {
		stats = cache.NewStatsCache(a.Redis)
	}
	return &Services{
		Collection: NewCollectionService(repo, stats, a.Metrics, a.Logger),
	}, nil
}

// NewRepository returns the snapshot store selected by the configuration.
func NewRepository(a *app.Application) (repositories.SnapshotRepository, error) {
	var pub persistence.Publisher
	if a.EventBus != nil {
		pub = a.EventBus
	}

	switch a.Config.StoreBackend {
	case config.StoreMemory:
		return memory.NewSnapshotRepository(pub), nil
	case config.StoreSQLite:
		if a.Db == nil {
			return nil, fmt.Errorf("store %s: database not opened", a.Config.StoreBackend)
		}
		return sqlite.NewSnapshotRepository(a.Db, pub), nil
	case config.StorePostgres:
		if a.Db == nil {
			return nil, fmt.Errorf("store %s: database not opened", a.Config.StoreBackend)
		}
		return postgres.NewSnapshotRepository(a.Db, pub), nil
	case config.StoreRedis:
		if a.Redis == nil {
			return nil, fmt.Errorf("store %s: redis not connected", a.Config.StoreBackend)
		}
		return redisstore.NewSnapshotRepository(a.Redis, pub), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.Config.StoreBackend)
	}
}
