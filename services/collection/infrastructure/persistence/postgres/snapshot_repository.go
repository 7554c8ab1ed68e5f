// Package postgres stores collection snapshots in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mamecholeye-lab/Rmam/pkg/database"
	pkgevents "github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
)

const (
	selectSnapshot = `SELECT data FROM collection_snapshots WHERE workspace = $1`
	upsertSnapshot = `INSERT INTO collection_snapshots (workspace, data, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (workspace) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	deleteSnapshot = `DELETE FROM collection_snapshots WHERE workspace = $1`
)

// txPublisher is implemented by an event bus that can join a transaction.
type txPublisher interface {
	Transactional() bool
	NewTxPublisher(tx *sql.Tx) (message.Publisher, error)
}

// SnapshotRepository implements repositories.SnapshotRepository against PostgreSQL.
type SnapshotRepository struct {
	db  *database.Database
	pub persistence.Publisher
	tx  txPublisher // set when pub can publish inside the write transaction
}

// NewSnapshotRepository returns a repository on db. When pub is an event bus
// on the SQL transport, change events are written in the same transaction as
// the snapshot. pub may be nil.
func NewSnapshotRepository(db *database.Database, pub persistence.Publisher) *SnapshotRepository {
	r := &SnapshotRepository{db: db, pub: pub}
	if tp, ok := pub.(txPublisher); ok && tp.Transactional() {
		r.tx = tp
	}
	return r
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

// Save upserts the snapshot and publishes change.
func (r *SnapshotRepository) Save(ctx context.Context, workspace string, snap *models.Snapshot, change *events.CollectionChangedEvent) error {
	data, err := persistence.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	return r.write(ctx, change, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertSnapshot, workspace, string(data), time.Now().UTC()); err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}
		return nil
	})
}

// Delete removes the snapshot and publishes change.
func (r *SnapshotRepository) Delete(ctx context.Context, workspace string, change *events.CollectionChangedEvent) error {
	return r.write(ctx, change, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteSnapshot, workspace); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		return nil
	})
}

// Ping checks the database connection.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// write runs fn in a transaction. The change event joins the transaction on
// the SQL transport and is published after commit otherwise.
func (r *SnapshotRepository) write(ctx context.Context, change *events.CollectionChangedEvent, fn func(*sql.Tx) error) error {
	inTx := r.tx != nil
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		if !inTx || change == nil {
			return nil
		}
		msg, err := persistence.ChangeMessage(change)
		if err != nil {
			return err
		}
		pkgevents.InjectTrace(ctx, msg)
		p, err := r.tx.NewTxPublisher(tx)
		if err != nil {
			return fmt.Errorf("create publisher: %w", err)
		}
		if err := p.Publish(events.TopicCollectionChanged, msg); err != nil {
			return fmt.Errorf("publish collection changed: %w", err)
		}
		return nil
	})
	if err != nil || inTx {
		return err
	}
	return persistence.PublishChange(ctx, r.pub, change)
}
