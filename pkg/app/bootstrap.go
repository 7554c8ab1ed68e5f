package app

import (
	"context"
	"fmt"

	"github.com/mamecholeye-lab/Rmam/migrations"
	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/database"
	"github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/migrator"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
)

// Bootstrap opens the infrastructure cfg asks for:
//
//   - sqlite / postgres: a database, migrated to the latest schema
//   - postgres: the SQL event transport on the same database
//   - otherwise: the in-memory event transport
//   - REDIS_URL set: a Redis client for the caches (and the redis store)
//
// On error everything opened so far is closed.
func Bootstrap(ctx context.Context, cfg *config.Config, log logger.Logger) (_ *Application, err error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	a := &Application{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	switch cfg.StoreBackend {
	case config.StoreSQLite:
		if a.Db, err = database.NewSQLite(ctx, cfg.SQLitePath, log); err != nil {
			return nil, err
		}
	case config.StorePostgres:
		if a.Db, err = database.NewPool(ctx, cfg.DatabaseURL, log); err != nil {
			return nil, err
		}
	}
	if a.Db != nil {
		if err = migrator.RunMigrations(a.Db.DB(), a.Db.Dialect(), migrations.FS); err != nil {
			return nil, err
		}
		log.Info("database ready", "store", cfg.StoreBackend)
	}

	if cfg.RedisURL != "" {
		if a.Redis, err = cache.NewRedisClient(ctx, cfg.RedisURL); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("redis connected")
	}

	if cfg.StoreBackend == config.StorePostgres {
		if a.EventBus, err = events.NewEventBus(a.Db.DB(), cfg, log); err != nil {
			return nil, err
		}
	} else {
		a.EventBus = events.NewInMemoryEventBus(log)
	}

	if a.Metrics, err = telemetry.NewMetrics(nil); err != nil {
		return nil, err
	}

	return a, nil
}
