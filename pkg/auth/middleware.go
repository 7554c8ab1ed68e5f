package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
)

const sessionName = "rmam_session"
const sessionWorkspaceKey = "workspace_id"

// RequireWorkspace is a chi middleware that binds every request to a workspace.
// The workspace id lives in the session; a request without a valid one gets a
// fresh workspace and a new session cookie. Returns 500 when the session
// cannot be persisted.
//
// After this middleware, handlers can safely call workspace.FromCtx(r.Context()).
func RequireWorkspace(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				// gorilla returns a fresh session alongside decode errors.
				log.WarnContext(r.Context(), "invalid session cookie, starting new workspace", "error", err)
			}
			if session == nil {
				httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
				return
			}

			ws, ok := session.Values[sessionWorkspaceKey].(string)
			if _, perr := uuid.Parse(ws); !ok || perr != nil {
				if ok && ws != "" {
					log.WarnContext(r.Context(), "invalid workspace_id in session", "workspace_id", ws)
				}
				ws = uuid.NewString()
				session.Values[sessionWorkspaceKey] = ws
				if err := session.Save(r, w); err != nil {
					log.ErrorContext(r.Context(), "failed to save session", "error", err)
					httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
					return
				}
				log.InfoContext(workspace.WithWorkspace(r.Context(), ws), "workspace created")
			}

			ctx := workspace.WithWorkspace(r.Context(), ws)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
