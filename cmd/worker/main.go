package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
	collectionSubs "github.com/mamecholeye-lab/Rmam/services/collection/application/subscribers"
	selectionSubs "github.com/mamecholeye-lab/Rmam/services/selection/application/subscribers"
)

// Consumes domain events from the PostgreSQL transport and maintains the
// Redis read models (collection stats, draw history) shared with cmd/api.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if cfg.StoreBackend != config.StorePostgres || cfg.RedisURL == "" {
		log.Error("worker requires STORE_BACKEND=postgres and REDIS_URL; other setups handle events inside cmd/api",
			"store", cfg.StoreBackend)
		os.Exit(1)
	}

	ctx := context.Background()

	otelProviders, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelProviders.Shutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize infrastructure", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	// EventBus.Close() (via a.Close) waits up to 30s for in-flight handlers.
	defer a.Close() //nolint:errcheck

	subCtx, cancelSubs := context.WithCancel(ctx)
	defer cancelSubs()
	if err := registerSubscribers(subCtx, a); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// Probe listener: the worker serves no API, only health and metrics.
	probe := chi.NewRouter()
	probe.Use(logger.Middleware(log), logger.Recovery(log))
	probe.Get("/health", httpx.HealthHandler(a.HealthChecks(nil)))
	probe.Get("/metrics", otelProviders.MetricsHandler.ServeHTTP)
	srv := httpx.NewServer(cfg.WorkerHTTPAddr, probe)

	go func() {
		log.Info("worker probes listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("probe server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("probe server shutdown", "error", err)
	}
	cancelSubs()
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	if err := collectionSubs.Register(ctx, a); err != nil {
		return err
	}
	history := cache.NewHistoryCache(a.Redis, a.Config.HistoryLimit)
	return selectionSubs.Register(ctx, a, history)
}
