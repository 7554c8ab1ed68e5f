// Package redis stores collection snapshots as JSON strings in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	"github.com/mamecholeye-lab/Rmam/services/collection/infrastructure/persistence"
)

// SnapshotRepository implements repositories.SnapshotRepository against Redis.
// Each workspace is one key (repositories.SnapshotKey) with no expiry.
type SnapshotRepository struct {
	r   *cache.RedisClient
	pub persistence.Publisher
}

// NewSnapshotRepository returns a repository on r. pub may be nil.
func NewSnapshotRepository(r *cache.RedisClient, pub persistence.Publisher) *SnapshotRepository {
	return &SnapshotRepository{r: r, pub: pub}
}

// Load returns the stored snapshot or ErrSnapshotNotFound.
func (s *SnapshotRepository) Load(ctx context.Context, workspace string) (*models.Snapshot, error) {
	data, err := s.r.GetBytes(ctx, repositories.SnapshotKey(workspace))
	if errors.Is(err, goredis.Nil) {
		return nil, repositories.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return persistence.DecodeSnapshot(data)
}

// Save overwrites the snapshot key, then publishes change.
func (s *SnapshotRepository) Save(ctx context.Context, workspace string, snap *models.Snapshot, change *events.CollectionChangedEvent) error {
	data, err := persistence.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.r.SetBytes(ctx, repositories.SnapshotKey(workspace), data, 0); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return persistence.PublishChange(ctx, s.pub, change)
}

// Delete removes the snapshot key, then publishes change.
func (s *SnapshotRepository) Delete(ctx context.Context, workspace string, change *events.CollectionChangedEvent) error {
	if err := s.r.Delete(ctx, repositories.SnapshotKey(workspace)); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return persistence.PublishChange(ctx, s.pub, change)
}

// Ping checks the Redis connection.
func (s *SnapshotRepository) Ping(ctx context.Context) error {
	return s.r.Ping(ctx)
}
