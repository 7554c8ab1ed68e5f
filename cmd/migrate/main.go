package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mamecholeye-lab/Rmam/migrations"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/database"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/migrator"
)

// Applies pending schema migrations for the configured SQL store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	ctx := context.Background()

	var db *database.Database
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err = database.NewPool(ctx, cfg.DatabaseURL, log)
	case config.StoreSQLite:
		db, err = database.NewSQLite(ctx, cfg.SQLitePath, log)
	default:
		log.Info("store backend has no schema; nothing to migrate", "backend", cfg.StoreBackend)
		return
	}
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(db.DB(), db.Dialect(), migrations.FS); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	v, _ := migrator.Version(db.DB(), db.Dialect())
	log.Info("migrations applied", "backend", cfg.StoreBackend, "version", v)
}
