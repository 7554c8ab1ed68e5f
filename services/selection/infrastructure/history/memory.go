// Package history keeps recent draws in process memory when Redis is not configured.
package history

import (
	"context"
	"slices"
	"sync"

	"github.com/mamecholeye-lab/Rmam/pkg/cache"
)

// Memory is a per-workspace capped list of draws, newest first. It mirrors
// cache.HistoryCache without expiry.
type Memory struct {
	mu       sync.Mutex
	capacity int
	draws    map[string][]cache.CachedDraw
}

// NewMemory keeps at most capacity draws per workspace.
func NewMemory(capacity int) *Memory {
	return &Memory{capacity: max(capacity, 1), draws: make(map[string][]cache.CachedDraw)}
}

// Push prepends d, dropping the oldest entry beyond capacity.
func (m *Memory) Push(_ context.Context, workspace string, d *cache.CachedDraw) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := slices.Insert(m.draws[workspace], 0, *d)
	if len(list) > m.capacity {
		list = list[:m.capacity]
	}
	m.draws[workspace] = list
	return nil
}

// Recent returns up to limit draws, newest first.
func (m *Memory) Recent(_ context.Context, workspace string, limit int) ([]cache.CachedDraw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.draws[workspace]
	if limit < 0 {
		limit = 0
	}
	return slices.Clone(list[:min(limit, len(list))]), nil
}
