package app

import (
	"errors"

	"github.com/gorilla/sessions"

	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/database"
	"github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's services.New during startup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, request_id and workspace_id are injected
// automatically:
//
//	app.Logger.InfoContext(ctx, "collection imported", "items", n)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database // nil unless STORE_BACKEND is sqlite or postgres
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient // nil when REDIS_URL is empty
	SessionStore sessions.Store     // nil outside the API process
	Metrics      *telemetry.Metrics
}

// Close releases the infrastructure opened by Bootstrap: the event bus first,
// so in-flight handlers can still reach Redis and the database.
func (a *Application) Close() error {
	var errs []error
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.Db != nil {
		errs = append(errs, a.Db.Close())
	}
	return errors.Join(errs...)
}

// InProcessEvents reports whether subscribers must run inside the publishing
// process. The SQL transport is consumed by cmd/worker instead.
func (a *Application) InProcessEvents() bool {
	return a.EventBus != nil && !a.EventBus.Transactional()
}

// HealthChecks lists the opened dependencies for the health endpoint. Absent
// ones stay nil so they report as disabled.
func (a *Application) HealthChecks(store httpx.HealthChecker) httpx.HealthChecks {
	checks := httpx.HealthChecks{Store: store}
	if a.Db != nil {
		checks.Database = a.Db
	}
	if a.Redis != nil {
		checks.Redis = a.Redis
	}
	if a.EventBus != nil {
		checks.EventBus = a.EventBus
	}
	return checks
}
