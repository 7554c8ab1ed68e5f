package workspace

import (
	"context"
	"errors"
	"testing"
)

func TestWithWorkspace_FromCtx(t *testing.T) {
	ctx := WithWorkspace(context.Background(), "ws-1")

	got, err := FromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ws-1" {
		t.Fatalf("expected ws-1, got %q", got)
	}
}

func TestFromCtx_EmptyContext(t *testing.T) {
	_, err := FromCtx(context.Background())
	if !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestFromCtx_BlankWorkspace(t *testing.T) {
	ctx := WithWorkspace(context.Background(), "  ")
	if _, err := FromCtx(ctx); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound for blank workspace, got %v", err)
	}
}

func TestFromCtx_Isolation(t *testing.T) {
	ctx1 := WithWorkspace(context.Background(), "a")
	ctx2 := WithWorkspace(context.Background(), "b")

	got1, _ := FromCtx(ctx1)
	got2, _ := FromCtx(ctx2)
	if got1 != "a" || got2 != "b" {
		t.Fatalf("expected isolated workspaces, got %q and %q", got1, got2)
	}
}
