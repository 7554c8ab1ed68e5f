package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/migrator"
)

func testConfig(store string) *config.Config {
	return &config.Config{
		StoreBackend: store,
		LogLevel:     "error",
		ServiceName:  "rmam-test",
		HistoryLimit: 10,
	}
}

func TestBootstrap_Memory(t *testing.T) {
	cfg := testConfig(config.StoreMemory)
	a, err := Bootstrap(context.Background(), cfg, logger.New(cfg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close() //nolint:errcheck

	if a.Db != nil {
		t.Error("expected no database for the memory store")
	}
	if a.Redis != nil {
		t.Error("expected no redis without REDIS_URL")
	}
	if a.EventBus == nil || !a.InProcessEvents() {
		t.Error("expected the in-memory event bus")
	}
	if a.Metrics == nil {
		t.Error("expected metrics")
	}
}

func TestBootstrap_SQLiteMigrates(t *testing.T) {
	cfg := testConfig(config.StoreSQLite)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "rmam.db")

	a, err := Bootstrap(context.Background(), cfg, logger.New(cfg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close() //nolint:errcheck

	if a.Db == nil {
		t.Fatal("expected a database")
	}
	v, err := migrator.Version(a.Db.DB(), a.Db.Dialect())
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 1 {
		t.Errorf("expected schema version 1, got %d", v)
	}
	if !a.InProcessEvents() {
		t.Error("expected in-process events for sqlite")
	}
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	cfg := testConfig(config.StoreRedis)
	if _, err := Bootstrap(context.Background(), cfg, logger.New(cfg)); err == nil {
		t.Fatal("expected error for redis store without REDIS_URL")
	}
}

func TestApplication_CloseEmpty(t *testing.T) {
	if err := (&Application{}).Close(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestApplication_HealthChecksSkipsAbsent(t *testing.T) {
	cfg := testConfig(config.StoreMemory)
	a, err := Bootstrap(context.Background(), cfg, logger.New(cfg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close() //nolint:errcheck

	checks := a.HealthChecks(nil)
	if checks.Database != nil || checks.Redis != nil || checks.Store != nil {
		t.Fatalf("expected absent dependencies to be nil, got %+v", checks)
	}
	if checks.EventBus == nil {
		t.Fatal("expected the event bus to be checked")
	}
}
