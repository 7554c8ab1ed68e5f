package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	pkgcache "github.com/mamecholeye-lab/Rmam/pkg/cache"
	pkgevents "github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/pkg/telemetry"
	collectionmodels "github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/selection/domain"
	"github.com/mamecholeye-lab/Rmam/services/selection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/selection/domain/models"
	domainsvcs "github.com/mamecholeye-lab/Rmam/services/selection/domain/services"
)

// ItemSource supplies the pool of a draw. The collection service implements it.
type ItemSource interface {
	Filter(ctx context.Context, workspace, group string) ([]collectionmodels.Item, error)
}

// HistoryStore keeps recent draws per workspace, newest first.
// *pkgcache.HistoryCache and the in-memory history implement it.
type HistoryStore interface {
	Push(ctx context.Context, workspace string, d *pkgcache.CachedDraw) error
	Recent(ctx context.Context, workspace string, limit int) ([]pkgcache.CachedDraw, error)
}

// Publisher is the part of the event bus the service uses.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// SelectionService draws random items from a workspace collection.
// The random source is shared by all callers and guarded by a mutex, so a
// seeded source produces one reproducible sequence per process.
type SelectionService struct {
	mu           sync.Mutex // guards src
	src          domainsvcs.Source
	items        ItemSource
	history      HistoryStore // nil disables History
	historyLimit int
	pub          Publisher // nil disables selection.drawn
	metrics      *telemetry.Metrics
	log          logger.Logger
	now          func() time.Time
}

// NewSelectionService returns a SelectionService. history, pub and metrics may be nil.
func NewSelectionService(
	src domainsvcs.Source,
	items ItemSource,
	history HistoryStore,
	historyLimit int,
	pub Publisher,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *SelectionService {
	return &SelectionService{
		src:          src,
		items:        items,
		history:      history,
		historyLimit: max(historyLimit, 1),
		pub:          pub,
		metrics:      metrics,
		log:          log,
		now:          time.Now,
	}
}

// Draw filters the collection once and draws from the result:
//
//   - ModeSingle: one item
//   - ModeBatch: min(Count, pool) distinct items; Count below 1 means 1
//   - ModeMultiset: five independent sets of min(3, pool) distinct items
//
// An empty pool is ErrEmptyPool in every mode and consumes no randomness.
func (s *SelectionService) Draw(ctx context.Context, workspace string, req models.Request) (_ *models.Result, err error) {
	ctx, span := telemetry.StartSpan(ctx, "selection.draw", attribute.String("workspace", workspace))
	defer func() { telemetry.EndSpan(span, err) }()

	mode, err := models.ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	group := req.Group
	if group == "" {
		group = collectionmodels.AllGroups
	}

	pool, err := s.items.Filter(ctx, workspace, group)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: group %q", domain.ErrEmptyPool, group)
	}

	span.SetAttributes(attribute.String("mode", string(mode)), attribute.Int("pool_size", len(pool)))
	res := &models.Result{Mode: mode, Group: group, PoolSize: len(pool)}

	s.mu.Lock()
	err = s.pick(res, pool, req.Count)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	res.DrawnAt = s.now().UTC()
	picked := len(res.Picked())
	s.metrics.RecordDraw(ctx, string(mode), len(pool), res.Draws, picked)
	s.log.InfoContext(ctx, "selection drawn",
		"mode", mode, "group", group, "pool_size", len(pool), "picked", picked, "draws", res.Draws)

	// The draw already happened; a lost event only costs a history entry.
	if err := s.publish(ctx, workspace, req, res); err != nil {
		s.log.WarnContext(ctx, "publish selection drawn failed", "error", err)
	}
	return res, nil
}

// pick fills res from pool according to res.Mode. Callers hold s.mu.
func (s *SelectionService) pick(res *models.Result, pool []collectionmodels.Item, count int) error {
	src := domainsvcs.NewCountingSource(s.src)
	switch res.Mode {
	case models.ModeSingle:
		item, err := domainsvcs.PickOne(src, pool)
		if err != nil {
			return fmt.Errorf("%w: group %q", err, res.Group)
		}
		res.Items = []collectionmodels.Item{item}
	case models.ModeBatch:
		res.Items = domainsvcs.PickBatch(src, pool, max(count, 1))
	case models.ModeMultiset:
		res.Sets = domainsvcs.PickMultiset(src, pool)
	}
	res.Draws = src.Calls()
	return nil
}

// QuickPick draws one item from the whole collection, ignoring any filter.
func (s *SelectionService) QuickPick(ctx context.Context, workspace string) (*models.Result, error) {
	return s.Draw(ctx, workspace, models.Request{Group: collectionmodels.AllGroups, Count: 1, Mode: models.ModeSingle})
}

// History returns up to limit recent draws, newest first. limit is clamped
// to the configured maximum; values below 1 mean the maximum.
func (s *SelectionService) History(ctx context.Context, workspace string, limit int) ([]pkgcache.CachedDraw, error) {
	if s.history == nil {
		return []pkgcache.CachedDraw{}, nil
	}
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	draws, err := s.history.Recent(ctx, workspace, limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return draws, nil
}

func (s *SelectionService) publish(ctx context.Context, workspace string, req models.Request, res *models.Result) error {
	if s.pub == nil {
		return nil
	}
	sets := res.Sets
	if res.Mode != models.ModeMultiset {
		sets = [][]collectionmodels.Item{res.Items}
	}
	requested := 1
	switch res.Mode {
	case models.ModeBatch:
		requested = max(req.Count, 1)
	case models.ModeMultiset:
		requested = domainsvcs.MultisetSets * domainsvcs.MultisetSize
	}

	evt := events.SelectionDrawnEvent{
		EventID:    uuid.New(),
		Version:    1,
		Workspace:  workspace,
		Mode:       string(res.Mode),
		Group:      res.Group,
		Requested:  requested,
		PoolSize:   res.PoolSize,
		Sets:       sets,
		Draws:      res.Draws,
		OccurredAt: res.DrawnAt,
	}
	msg, err := pkgevents.NewMessage(evt.EventID, evt.Version, evt)
	if err != nil {
		return err
	}
	msg.Metadata.Set("workspace", workspace)
	return s.pub.Publish(ctx, events.TopicSelectionDrawn, msg)
}
