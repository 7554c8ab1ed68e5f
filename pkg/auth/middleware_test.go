package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
)

// newTestStore returns the cookie-backed store used when Redis is not configured.
func newTestStore() sessions.Store {
	return NewStore(nil,
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
		false,
	)
}

// newTestLogger creates a logger that discards output.
func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// requestWithSession builds an *http.Request carrying a session cookie whose
// workspace value is ws.
func requestWithSession(t *testing.T, store sessions.Store, ws string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/collection", nil)

	session, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	session.Values[sessionWorkspaceKey] = ws
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func captureWorkspace(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = workspace.FromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireWorkspace_ValidSession(t *testing.T) {
	store := newTestStore()
	ws := uuid.NewString()

	var got string
	r := requestWithSession(t, store, ws)
	w := httptest.NewRecorder()
	RequireWorkspace(store, newTestLogger())(captureWorkspace(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != ws {
		t.Fatalf("expected workspace %s in context, got %q", ws, got)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for an existing workspace")
	}
}

func TestRequireWorkspace_MissingCookieCreatesWorkspace(t *testing.T) {
	store := newTestStore()

	var got string
	r := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	w := httptest.NewRecorder()
	RequireWorkspace(store, newTestLogger())(captureWorkspace(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected a generated uuid workspace, got %q", got)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionName {
		t.Fatalf("expected one %s cookie, got %v", sessionName, cookies)
	}

	// The issued cookie resolves to the same workspace on the next request.
	next := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	next.AddCookie(cookies[0])
	var again string
	RequireWorkspace(store, newTestLogger())(captureWorkspace(&again)).ServeHTTP(httptest.NewRecorder(), next)
	if again != got {
		t.Fatalf("expected workspace %s to persist, got %q", got, again)
	}
}

func TestRequireWorkspace_InvalidWorkspaceReplaced(t *testing.T) {
	store := newTestStore()

	var got string
	r := requestWithSession(t, store, "not-a-valid-uuid")
	w := httptest.NewRecorder()
	RequireWorkspace(store, newTestLogger())(captureWorkspace(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got == "not-a-valid-uuid" {
		t.Fatal("expected invalid workspace to be replaced")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected uuid workspace, got %q", got)
	}
}

func TestRequireWorkspace_TamperedCookie(t *testing.T) {
	store := newTestStore()

	var got string
	r := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	r.AddCookie(&http.Cookie{Name: sessionName, Value: "tampered"})
	w := httptest.NewRecorder()
	RequireWorkspace(store, newTestLogger())(captureWorkspace(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got == "" {
		t.Fatal("expected a fresh workspace for a tampered cookie")
	}
}

// failingStore hands out sessions that cannot be saved.
type failingStore struct{}

func (failingStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.NewSession(failingStore{}, name), nil
}

func (failingStore) New(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.NewSession(failingStore{}, name), nil
}

func (failingStore) Save(*http.Request, http.ResponseWriter, *sessions.Session) error {
	return errors.New("store down")
}

func TestRequireWorkspace_SaveFailure(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	w := httptest.NewRecorder()
	RequireWorkspace(failingStore{}, newTestLogger())(next).ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestNewStore_SelectsBackend(t *testing.T) {
	if _, ok := newTestStore().(*sessions.CookieStore); !ok {
		t.Fatal("expected cookie store without redis")
	}
}

// Integration test: skipped unless REDIS_URL is set.
func TestRedisStore_WorkspaceSurvivesRequests(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration test")
	}
	rc, err := cache.NewRedisClient(context.Background(), redisURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	store := NewStore(rc,
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
		false,
	)
	if _, ok := store.(*RedisStore); !ok {
		t.Fatalf("expected *RedisStore with redis, got %T", store)
	}

	mw := RequireWorkspace(store, newTestLogger())

	var first string
	w := httptest.NewRecorder()
	mw(captureWorkspace(&first)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/collection", nil))
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie on the first request")
	}

	var second string
	req := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	mw(captureWorkspace(&second)).ServeHTTP(httptest.NewRecorder(), req)

	if first == "" || first != second {
		t.Fatalf("expected the same workspace on both requests, got %q and %q", first, second)
	}
}
