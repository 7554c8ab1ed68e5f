package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// StatsCacheTTL is the time-to-live for cached collection statistics.
	StatsCacheTTL = 24 * time.Hour

	statsCacheKeyPrefix = "stats"
)

// CachedGroupCount is the item count of one group value.
type CachedGroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// CachedStats is the denormalized statistics read model of one workspace.
// Fields are stored as a Redis hash; group counts are a JSON-encoded field
// to keep their order.
type CachedStats struct {
	Workspace   string             `json:"workspace"`
	Total       int                `json:"total"`
	Active      int                `json:"active"`
	Groups      int                `json:"groups"`
	GroupCounts []CachedGroupCount `json:"group_counts"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// StatsCache reads and writes per-workspace statistics.
// Key format: "stats:{workspace}"
type StatsCache struct {
	client *RedisClient
}

// NewStatsCache creates a new StatsCache backed by the given RedisClient.
func NewStatsCache(r *RedisClient) *StatsCache {
	return &StatsCache{client: r}
}

// Get retrieves the cached statistics of a workspace.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *StatsCache) Get(ctx context.Context, workspace string) (*CachedStats, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(workspace)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return decodeStats(workspace, vals)
}

// Set writes the statistics hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *StatsCache) Set(ctx context.Context, s *CachedStats) error {
	counts, err := json.Marshal(nonNilCounts(s.GroupCounts))
	if err != nil {
		return fmt.Errorf("cache encode group_counts: %w", err)
	}
	key := c.key(s.Workspace)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"total", s.Total,
		"active", s.Active,
		"groups", s.Groups,
		"group_counts", string(counts),
		"updated_at", s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, StatsCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the cached statistics of a workspace.
func (c *StatsCache) Delete(ctx context.Context, workspace string) error {
	return c.client.Delete(ctx, c.key(workspace))
}

// key builds the Redis key: "stats:{workspace}"
func (c *StatsCache) key(workspace string) string {
	return WorkspaceKey(statsCacheKeyPrefix, workspace)
}

func decodeStats(workspace string, vals map[string]string) (*CachedStats, error) {
	s := &CachedStats{Workspace: workspace}
	var err error
	if s.Total, err = strconv.Atoi(vals["total"]); err != nil {
		return nil, fmt.Errorf("cache parse total: %w", err)
	}
	if s.Active, err = strconv.Atoi(vals["active"]); err != nil {
		return nil, fmt.Errorf("cache parse active: %w", err)
	}
	if s.Groups, err = strconv.Atoi(vals["groups"]); err != nil {
		return nil, fmt.Errorf("cache parse groups: %w", err)
	}
	if err := json.Unmarshal([]byte(vals["group_counts"]), &s.GroupCounts); err != nil {
		return nil, fmt.Errorf("cache parse group_counts: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339Nano, vals["updated_at"]); err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return s, nil
}

func nonNilCounts(c []CachedGroupCount) []CachedGroupCount {
	if c == nil {
		return []CachedGroupCount{}
	}
	return c
}
