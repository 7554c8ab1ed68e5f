package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
)

// pingFunc adapts a function to httpx.HealthChecker.
type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func getHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, body
}

// TestHealthHandler_Deployments covers the checker sets each STORE_BACKEND wires.
func TestHealthHandler_Deployments(t *testing.T) {
	tests := []struct {
		name     string
		checks   httpx.HealthChecks
		wantCode int
		want     map[string]string
	}{
		{
			name:     "memory store, nothing else",
			checks:   httpx.HealthChecks{Store: up},
			wantCode: http.StatusOK,
			want:     map[string]string{"status": "ok", "store": "ok", "database": "disabled", "redis": "disabled", "event_bus": "disabled"},
		},
		{
			name:     "sqlite store with redis caches",
			checks:   httpx.HealthChecks{Store: up, Redis: up, EventBus: up},
			wantCode: http.StatusOK,
			want:     map[string]string{"status": "ok", "store": "ok", "database": "disabled", "redis": "ok", "event_bus": "ok"},
		},
		{
			name:     "sqlite file unwritable",
			checks:   httpx.HealthChecks{Store: down, EventBus: up},
			wantCode: http.StatusServiceUnavailable,
			want:     map[string]string{"status": "degraded", "store": "unreachable", "event_bus": "ok"},
		},
		{
			name:     "redis store with redis gone",
			checks:   httpx.HealthChecks{Store: down, Redis: down, EventBus: up},
			wantCode: http.StatusServiceUnavailable,
			want:     map[string]string{"status": "degraded", "store": "unreachable", "redis": "unreachable"},
		},
		{
			name:     "postgres with the SQL bus",
			checks:   httpx.HealthChecks{Store: up, Database: up, Redis: up, EventBus: up},
			wantCode: http.StatusOK,
			want:     map[string]string{"status": "ok", "database": "ok", "event_bus": "ok"},
		},
		{
			name:     "postgres down takes the SQL bus with it",
			checks:   httpx.HealthChecks{Store: down, Database: down, Redis: up, EventBus: down},
			wantCode: http.StatusServiceUnavailable,
			want:     map[string]string{"status": "degraded", "store": "unreachable", "database": "unreachable", "redis": "ok", "event_bus": "unreachable"},
		},
		{
			name:     "only the cache is down",
			checks:   httpx.HealthChecks{Store: up, Redis: down},
			wantCode: http.StatusServiceUnavailable,
			want:     map[string]string{"status": "degraded", "store": "ok", "redis": "unreachable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := getHealth(t, tt.checks)
			if code != tt.wantCode {
				t.Fatalf("expected %d, got %d (%v)", tt.wantCode, code, body)
			}
			for field, want := range tt.want {
				if body[field] != want {
					t.Errorf("%s: expected %q, got %q", field, want, body[field])
				}
			}
		})
	}
}

func TestHealthHandler_PingsHaveDeadline(t *testing.T) {
	var sawDeadline bool
	store := pingFunc(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})

	if code, _ := getHealth(t, httpx.HealthChecks{Store: store}); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !sawDeadline {
		t.Fatal("expected the store ping to run with a deadline")
	}
}
