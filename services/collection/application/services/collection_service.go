package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"

	pkgcache "github.com/mamecholeye-lab/Rmam/pkg/cache"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/repositories"
	domainsvcs "github.com/mamecholeye-lab/Rmam/services/collection/domain/services"
)

// StatsCache is the statistics read model. *pkgcache.StatsCache implements it.
type StatsCache interface {
	Get(ctx context.Context, workspace string) (*pkgcache.CachedStats, error)
	Set(ctx context.Context, s *pkgcache.CachedStats) error
	Delete(ctx context.Context, workspace string) error
}

// ImportResult is the outcome of Import.
type ImportResult struct {
	Format domainsvcs.Format
	Items  []models.Item
	Groups []string
}

// CollectionService loads, mutates and saves workspace collections.
// Event publishing is handled by the repository layer (outbox pattern).
//
// Calls are serialised: each one loads the snapshot, applies one operation
// and saves the result before the next starts.
type CollectionService struct {
	mu      sync.Mutex
	repo    repositories.SnapshotRepository
	stats   StatsCache // nil disables the read model
	metrics *telemetry.Metrics
	log     logger.Logger
	now     func() time.Time
}

// NewCollectionService returns a CollectionService. stats and metrics may be nil.
func NewCollectionService(repo repositories.SnapshotRepository, stats StatsCache, metrics *telemetry.Metrics, log logger.Logger) *CollectionService {
	return &CollectionService{
		repo:    repo,
		stats:   stats,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// Import replaces the workspace collection with the parsed input. A snapshot
// or export document is restored as-is; any other shape is imported as records.
func (s *CollectionService) Import(ctx context.Context, workspace string, raw []byte) (_ *ImportResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "collection.import", attribute.String("workspace", workspace))
	defer func() { telemetry.EndSpan(span, err) }()

	payload, err := domainsvcs.ParseInput(raw)
	if err != nil {
		return nil, err
	}

	c := models.NewCollection()
	reason := events.ReasonImported
	if payload.Format == domainsvcs.FormatSnapshot {
		if err := domainsvcs.ValidateSnapshot(payload.Snapshot); err != nil {
			return nil, err
		}
		if payload.TimestampErr != nil {
			s.log.WarnContext(ctx, "restoring snapshot without its timestamp", "error", payload.TimestampErr)
		}
		c = models.RestoreCollection(*payload.Snapshot)
		reason = events.ReasonRestored
	} else {
		c.Import(payload.Records)
	}
	span.SetAttributes(attribute.String("format", string(payload.Format)), attribute.Int("items", c.Len()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, workspace, c, reason); err != nil {
		return nil, err
	}

	s.metrics.RecordImport(ctx, string(payload.Format), c.Len())
	s.log.InfoContext(ctx, "collection imported",
		"format", payload.Format, "items", c.Len(), "groups", len(c.Groups()))

	return &ImportResult{Format: payload.Format, Items: c.Items(), Groups: c.Groups()}, nil
}

// Get returns the stored snapshot. A workspace with nothing saved yields an
// empty snapshot stamped now.
func (s *CollectionService) Get(ctx context.Context, workspace string) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Load(ctx, workspace)
	if errors.Is(err, repositories.ErrSnapshotNotFound) {
		empty := models.NewCollection().Snapshot(s.now())
		return &empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if err := domainsvcs.ValidateSnapshot(snap); err != nil {
		return nil, err
	}
	restored := models.RestoreCollection(*snap).Snapshot(snap.Timestamp)
	return &restored, nil
}

// CreateGroup registers a group and returns the updated registry.
func (s *CollectionService) CreateGroup(ctx context.Context, workspace, name string) ([]string, error) {
	var groups []string
	err := s.mutate(ctx, workspace, events.ReasonGroupCreated, func(c *models.Collection) error {
		if err := c.CreateGroup(name); err != nil {
			return err
		}
		groups = c.Groups()
		return nil
	})
	return groups, err
}

// DeleteGroup moves the group's items to the default group, unregisters it
// and returns the updated registry. Deleting an absent group succeeds.
func (s *CollectionService) DeleteGroup(ctx context.Context, workspace, name string) ([]string, error) {
	var groups []string
	err := s.mutate(ctx, workspace, events.ReasonGroupDeleted, func(c *models.Collection) error {
		c.DeleteGroup(name)
		groups = c.Groups()
		return nil
	})
	return groups, err
}

// AssignGroup moves one item to group. With strict set, group must be the
// default group or registered.
func (s *CollectionService) AssignGroup(ctx context.Context, workspace string, itemID int, group string, strict bool) (models.Item, error) {
	var item models.Item
	err := s.mutate(ctx, workspace, events.ReasonItemReassigned, func(c *models.Collection) error {
		assign := c.AssignGroup
		if strict {
			assign = c.AssignExistingGroup
		}
		if err := assign(itemID, group); err != nil {
			return err
		}
		item, _ = c.Item(itemID)
		return nil
	})
	return item, err
}

// Filter returns the items of group, or every item for models.AllGroups.
func (s *CollectionService) Filter(ctx context.Context, workspace, group string) ([]models.Item, error) {
	c, err := s.read(ctx, workspace)
	if err != nil {
		return nil, err
	}
	return c.FilterByGroup(group), nil
}

// Stats returns totals and per-group counts, read through the stats cache.
func (s *CollectionService) Stats(ctx context.Context, workspace string) (models.Stats, error) {
	if s.stats != nil {
		cached, err := s.stats.Get(ctx, workspace)
		if err == nil {
			return statsFromCache(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "stats cache read failed", "error", err)
		}
	}

	return s.readStats(ctx, workspace)
}

// readStats computes stats and fills the cache under s.mu, so a concurrent
// mutation's invalidation always lands after the fill.
func (s *CollectionService) readStats(ctx context.Context, workspace string) (models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, workspace)
	if err != nil {
		return models.Stats{}, err
	}
	stats := c.Stats()

	if s.stats != nil {
		if err := s.stats.Set(ctx, StatsToCache(workspace, stats, s.now())); err != nil {
			s.log.WarnContext(ctx, "stats cache write failed", "error", err)
		}
	}
	return stats, nil
}

// Export builds the export document.
func (s *CollectionService) Export(ctx context.Context, workspace string) (models.Export, error) {
	c, err := s.read(ctx, workspace)
	if err != nil {
		return models.Export{}, err
	}
	return c.Export(s.now()), nil
}

// Clear deletes every item and group of the workspace.
func (s *CollectionService) Clear(ctx context.Context, workspace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := s.change(workspace, events.ReasonCleared, models.NewCollection().Stats())
	if err := s.repo.Delete(ctx, workspace, change); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	s.invalidateStats(ctx, workspace)
	s.log.InfoContext(ctx, "collection cleared")
	return nil
}

// Ping reports whether the snapshot store is reachable.
func (s *CollectionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// mutate runs fn on the loaded collection and saves the result. Nothing is
// saved when fn fails.
func (s *CollectionService) mutate(ctx context.Context, workspace, reason string, fn func(*models.Collection) error) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "collection."+reason, attribute.String("workspace", workspace))
	defer func() { telemetry.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, workspace)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.save(ctx, workspace, c, reason)
}

func (s *CollectionService) read(ctx context.Context, workspace string) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, workspace)
}

// load restores the workspace collection. A missing snapshot is an empty collection.
func (s *CollectionService) load(ctx context.Context, workspace string) (*models.Collection, error) {
	snap, err := s.repo.Load(ctx, workspace)
	if errors.Is(err, repositories.ErrSnapshotNotFound) {
		return models.NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if err := domainsvcs.ValidateSnapshot(snap); err != nil {
		return nil, err
	}
	return models.RestoreCollection(*snap), nil
}

func (s *CollectionService) save(ctx context.Context, workspace string, c *models.Collection, reason string) error {
	at := s.now()
	snap := c.Snapshot(at)
	change := s.change(workspace, reason, c.Stats())
	change.OccurredAt = at.UTC()
	if err := s.repo.Save(ctx, workspace, &snap, change); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	s.invalidateStats(ctx, workspace)
	return nil
}

// invalidateStats drops the cached statistics; the collection.changed
// subscriber or the next Stats call rebuilds them.
func (s *CollectionService) invalidateStats(ctx context.Context, workspace string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Delete(ctx, workspace); err != nil {
		s.log.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}

func (s *CollectionService) change(workspace, reason string, stats models.Stats) *events.CollectionChangedEvent {
	return &events.CollectionChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Workspace:  workspace,
		Reason:     reason,
		Stats:      stats,
		OccurredAt: s.now().UTC(),
	}
}

// StatsToCache converts domain statistics to the cached read model.
func StatsToCache(workspace string, s models.Stats, at time.Time) *pkgcache.CachedStats {
	counts := make([]pkgcache.CachedGroupCount, len(s.GroupCounts))
	for i, gc := range s.GroupCounts {
		counts[i] = pkgcache.CachedGroupCount{Group: gc.Group, Count: gc.Count}
	}
	return &pkgcache.CachedStats{
		Workspace:   workspace,
		Total:       s.Total,
		Active:      s.Active,
		Groups:      s.Groups,
		GroupCounts: counts,
		UpdatedAt:   at.UTC(),
	}
}

func statsFromCache(c *pkgcache.CachedStats) models.Stats {
	counts := make([]models.GroupCount, len(c.GroupCounts))
	for i, gc := range c.GroupCounts {
		counts[i] = models.GroupCount{Group: gc.Group, Count: gc.Count}
	}
	return models.Stats{
		Total:       c.Total,
		Active:      c.Active,
		Groups:      c.Groups,
		GroupCounts: counts,
	}
}
