package repositories

import (
	"context"
	"errors"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// ErrSnapshotNotFound is returned by Load when nothing was saved for a workspace.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository is the key-value blob store holding one collection
// snapshot per workspace. Writes are last-write-wins.
// The domain layer owns this interface; infrastructure implements it.
//
// Save and Delete publish change (when non-nil) after the write succeeds.
// Stores that support it publish within the write transaction.
type SnapshotRepository interface {
	// Load returns the stored snapshot or ErrSnapshotNotFound.
	Load(ctx context.Context, workspace string) (*models.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, workspace string, snap *models.Snapshot, change *events.CollectionChangedEvent) error

	// Delete removes the stored snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, workspace string, change *events.CollectionChangedEvent) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// SnapshotKey is the storage key of a workspace's snapshot.
func SnapshotKey(workspace string) string {
	return "controlPanelData:" + workspace
}
