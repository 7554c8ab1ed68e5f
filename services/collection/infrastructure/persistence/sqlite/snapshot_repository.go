// Package sqlite stores collection snapshots in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mamecholeye-lab/Rmam/pkg/database"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
)

const (
	selectSnapshot = `SELECT data FROM collection_snapshots WHERE workspace = ?`
	upsertSnapshot = `INSERT INTO collection_snapshots (workspace, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT (workspace) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	deleteSnapshot = `DELETE FROM collection_snapshots WHERE workspace = ?`
)

// SnapshotRepository implements repositories.SnapshotRepository against SQLite.
// The collection_snapshots table is created by the goose migrations.
type SnapshotRepository struct {
	db  *database.Database
	pub persistence.Publisher
}

// NewSnapshotRepository returns a repository on db. pub may be nil.
func NewSnapshotRepository(db *database.Database, pub persistence.Publisher) *SnapshotRepository {
	return &SnapshotRepository{db: db, pub: pub}
}

// Load returns the stored snapshot or ErrSnapshotNotFound.
func (r *SnapshotRepository) Load(ctx context.Context, workspace string) (*models.Snapshot, error) {
	var data string
	err := r.db.DB().QueryRowContext(ctx, selectSnapshot, workspace).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return persistence.DecodeSnapshot([]byte(data))
}

// Save upserts the snapshot, then publishes change.
func (r *SnapshotRepository) Save(ctx context.Context, workspace string, snap *models.Snapshot, change *events.CollectionChangedEvent) error {
	data, err := persistence.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if _, err := r.db.DB().ExecContext(ctx, upsertSnapshot, workspace, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return persistence.PublishChange(ctx, r.pub, change)
}

// Delete removes the snapshot, then publishes change.
func (r *SnapshotRepository) Delete(ctx context.Context, workspace string, change *events.CollectionChangedEvent) error {
	if _, err := r.db.DB().ExecContext(ctx, deleteSnapshot, workspace); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return persistence.PublishChange(ctx, r.pub, change)
}

// Ping checks the database connection.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
