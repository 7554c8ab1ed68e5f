package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// HistoryCacheTTL is refreshed on every push; idle histories expire.
	HistoryCacheTTL = 7 * 24 * time.Hour

	historyCacheKeyPrefix = "history"
)

// CachedPick is one drawn item as shown in the history.
type CachedPick struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Group string `json:"group"`
}

// CachedDraw is one history entry. Single and batch draws hold one set.
type CachedDraw struct {
	EventID   uuid.UUID      `json:"event_id"`
	Mode      string         `json:"mode"`
	Group     string         `json:"group"`
	Requested int            `json:"requested"`
	PoolSize  int            `json:"pool_size"`
	Sets      [][]CachedPick `json:"sets"`
	DrawnAt   time.Time      `json:"drawn_at"`
}

// HistoryCache keeps the most recent draws of each workspace in a capped
// Redis list, newest first.
// Key format: "history:{workspace}"
type HistoryCache struct {
	client   *RedisClient
	capacity int
}

// NewHistoryCache creates a HistoryCache keeping at most capacity entries per workspace.
func NewHistoryCache(r *RedisClient, capacity int) *HistoryCache {
	return &HistoryCache{client: r, capacity: max(capacity, 1)}
}

// Push prepends d and trims the list to capacity in one transaction.
func (c *HistoryCache) Push(ctx context.Context, workspace string, d *CachedDraw) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("cache encode draw: %w", err)
	}
	key := c.key(workspace)
	pipe := c.client.Client().TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(c.capacity-1))
	pipe.Expire(ctx, key, HistoryCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache push: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A missing key yields an empty slice.
func (c *HistoryCache) Recent(ctx context.Context, workspace string, limit int) ([]CachedDraw, error) {
	if limit <= 0 {
		return []CachedDraw{}, nil
	}
	raw, err := c.client.Client().LRange(ctx, c.key(workspace), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache range: %w", err)
	}
	out := make([]CachedDraw, 0, len(raw))
	for _, s := range raw {
		var d CachedDraw
		if err := json.Unmarshal([]byte(s), &d); err != nil {
			return nil, fmt.Errorf("cache decode draw: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// key builds the Redis key: "history:{workspace}"
func (c *HistoryCache) key(workspace string) string {
	return WorkspaceKey(historyCacheKeyPrefix, workspace)
}
