// Package services contains the sampling engine: stateless, without-replacement
// random selection over a borrowed pool. It never mutates the pool.
package services

import (
	"github.com/mamecholeye-lab/Rmam/services/selection/domain"
)

const (
	// MultisetSets is the number of independent batches PickMultiset draws.
	MultisetSets = 5

	// MultisetSize is the size of each PickMultiset batch.
	MultisetSize = 3
)

// Source yields uniformly distributed 32-bit values. *math/rand/v2.Rand
// satisfies it; tests substitute scripted sources.
type Source interface {
	Uint32() uint32
}

// DrawIndices returns min(k, poolSize) distinct indices in [0, poolSize), in
// draw order.
//
// Each candidate is src.Uint32() % poolSize; a candidate already drawn is
// discarded and redrawn. This is rejection sampling, not a shuffle: the
// number of Uint32 calls is part of the observable behaviour. The modulo
// reduction is slightly biased when poolSize does not divide 2^32; that bias
// is accepted.
//
// k <= 0 or poolSize <= 0 yields an empty result without consuming src.
func DrawIndices(src Source, poolSize, k int) []int {
	k = min(k, poolSize)
	if k <= 0 {
		return []int{}
	}

	n := uint32(poolSize)
	picked := make([]int, 0, k)
	used := make(map[int]struct{}, k)
	for len(picked) < k {
		idx := int(src.Uint32() % n)
		if _, dup := used[idx]; dup {
			continue
		}
		used[idx] = struct{}{}
		picked = append(picked, idx)
	}
	return picked
}

// PickOne draws a single element. An empty pool returns domain.ErrEmptyPool
// and does not consume src.
func PickOne[T any](src Source, pool []T) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, domain.ErrEmptyPool
	}
	return pool[DrawIndices(src, len(pool), 1)[0]], nil
}

// PickBatch draws count distinct elements in draw order. count is clamped to
// len(pool), so a short result is a truncation, not an error.
func PickBatch[T any](src Source, pool []T, count int) []T {
	indices := DrawIndices(src, len(pool), count)
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = pool[idx]
	}
	return out
}

// PickMultiset draws MultisetSets independent batches of MultisetSize.
// Each batch is internally distinct; batches may overlap one another.
func PickMultiset[T any](src Source, pool []T) [][]T {
	sets := make([][]T, MultisetSets)
	for i := range sets {
		sets[i] = PickBatch(src, pool, MultisetSize)
	}
	return sets
}
