// Package workspace carries the caller's workspace id through request contexts.
// A workspace owns exactly one collection.
package workspace

import (
	"context"
	"errors"
	"strings"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const workspaceKey contextKey = "workspace_id"

// ErrWorkspaceNotFound is returned when no workspace exists in the request context.
var ErrWorkspaceNotFound = errors.New("workspace not found in context")

// FromCtx extracts the workspace id from the request context.
func FromCtx(ctx context.Context) (string, error) {
	ws, ok := ctx.Value(workspaceKey).(string)
	if !ok || strings.TrimSpace(ws) == "" {
		return "", ErrWorkspaceNotFound
	}
	return ws, nil
}

// WithWorkspace returns a new context with the given workspace attached.
func WithWorkspace(ctx context.Context, ws string) context.Context {
	return context.WithValue(ctx, workspaceKey, ws)
}
