package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/mamecholeye-lab/Rmam/docs/swagger"
	"github.com/mamecholeye-lab/Rmam/pkg/app"
	"github.com/mamecholeye-lab/Rmam/pkg/auth"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
	collectionApi "github.com/mamecholeye-lab/Rmam/services/collection/application/api"
	collectionSvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
	collectionSubs "github.com/mamecholeye-lab/Rmam/services/collection/application/subscribers"
	selectionApi "github.com/mamecholeye-lab/Rmam/services/selection/application/api"
	selectionSvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
	selectionSubs "github.com/mamecholeye-lab/Rmam/services/selection/application/subscribers"
)

// services holds every bounded context's service container.
type services struct {
	collection *collectionSvcs.Services
	selection  *selectionSvcs.Services
}

// @title					rmam API
// @version				1.0
// @description			Import named links, organise them into groups and draw random selections.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelProviders, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelProviders.Shutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize infrastructure", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer a.Close() //nolint:errcheck

	a.SessionStore = auth.NewStore(
		a.Redis,
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
	)
	log.Info("session store initialized", "redis", a.Redis != nil)

	svcs, err := newServices(a)
	if err != nil {
		log.Error("failed to wire services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// The SQL transport is consumed by cmd/worker; the in-memory one only
	// reaches subscribers in this process.
	subCtx, cancelSubs := context.WithCancel(ctx)
	defer cancelSubs()
	if a.InProcessEvents() {
		if err := registerSubscribers(subCtx, a, svcs); err != nil {
			log.Error("failed to register subscribers", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(a.HealthChecks(svcs.collection.Collection)))
	r.Get("/metrics", otelProviders.MetricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireWorkspace(a.SessionStore, log))
		registerRoutes(r, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newServices wires every bounded context. Selection draws from the
// collection service.
func newServices(a *app.Application) (*services, error) {
	coll, err := collectionSvcs.New(a)
	if err != nil {
		return nil, err
	}
	sel, err := selectionSvcs.New(a, coll.Collection)
	if err != nil {
		return nil, err
	}
	return &services{collection: coll, selection: sel}, nil
}

// registerSubscribers wires the domain event handlers into this process.
func registerSubscribers(ctx context.Context, a *app.Application, svcs *services) error {
	if err := collectionSubs.Register(ctx, a); err != nil {
		return err
	}
	return selectionSubs.Register(ctx, a, svcs.selection.History)
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, svcs *services) {
	collectionApi.CollectionRoutes(r, svcs.collection)
	selectionApi.SelectionRoutes(r, svcs.selection)
}
