// Package memory holds a process-local snapshot store for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
)

// SnapshotRepository implements repositories.SnapshotRepository in memory.
// Snapshots are stored encoded so callers never share slices with the store.
type SnapshotRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
	pub  persistence.Publisher
}

// NewSnapshotRepository returns an empty store. pub may be nil.
func NewSnapshotRepository(pub persistence.Publisher) *SnapshotRepository {
	return &SnapshotRepository{data: make(map[string][]byte), pub: pub}
}

// Load returns the stored snapshot or ErrSnapshotNotFound.
func (r *SnapshotRepository) Load(_ context.Context, workspace string) (*models.Snapshot, error) {
	r.mu.RLock()
	data, ok := r.data[workspace]
	r.mu.RUnlock()
	if !ok {
		return nil, repositories.ErrSnapshotNotFound
	}
	return persistence.DecodeSnapshot(data)
}

// Save replaces the stored snapshot and publishes change.
func (r *SnapshotRepository) Save(ctx context.Context, workspace string, snap *models.Snapshot, change *events.CollectionChangedEvent) error {
	data, err := persistence.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data[workspace] = data
	r.mu.Unlock()
	return persistence.PublishChange(ctx, r.pub, change)
}

// Delete removes the stored snapshot and publishes change.
func (r *SnapshotRepository) Delete(ctx context.Context, workspace string, change *events.CollectionChangedEvent) error {
	r.mu.Lock()
	delete(r.data, workspace)
	r.mu.Unlock()
	return persistence.PublishChange(ctx, r.pub, change)
}

// Ping always succeeds.
func (r *SnapshotRepository) Ping(context.Context) error { return nil }
