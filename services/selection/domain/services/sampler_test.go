package services

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/mamecholeye-lab/Rmam/services/selection/domain"
)

// scriptedSource replays fixed values and counts how many were consumed.
type scriptedSource struct {
	t      *testing.T
	values []uint32
	calls  int
}

func script(t *testing.T, values ...uint32) *scriptedSource {
	return &scriptedSource{t: t, values: values}
}

func (s *scriptedSource) Uint32() uint32 {
	if s.calls >= len(s.values) {
		s.t.Fatalf("source exhausted after %d draws", s.calls)
	}
	v := s.values[s.calls]
	s.calls++
	return v
}

func seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestDrawIndices_RejectsRepeats(t *testing.T) {
	src := script(t, 0, 0, 3, 1)
	got := DrawIndices(src, 3, 2)

	if !slices.Equal(got, []int{0, 1}) {
		t.Fatalf("expected [0 1], got %v", got)
	}
	// 0 accepted, 0 rejected, 3%3=0 rejected, 1 accepted.
	if src.calls != 4 {
		t.Fatalf("expected 4 draws, got %d", src.calls)
	}
}

func TestDrawIndices_ReducesModuloPoolSize(t *testing.T) {
	src := script(t, 7, math.MaxUint32)
	got := DrawIndices(src, 5, 2)
	// 7%5=2, (2^32-1)%5=0
	if !slices.Equal(got, []int{2, 0}) {
		t.Fatalf("expected [2 0], got %v", got)
	}
}

func TestDrawIndices_PreservesDrawOrder(t *testing.T) {
	src := script(t, 4, 1, 3, 0, 2)
	got := DrawIndices(src, 5, 5)
	if !slices.Equal(got, []int{4, 1, 3, 0, 2}) {
		t.Fatalf("expected draw order [4 1 3 0 2], got %v", got)
	}
}

func TestDrawIndices_NoDrawForEmptyRequest(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		k        int
	}{
		{"zero k", 5, 0},
		{"negative k", 5, -2},
		{"zero pool", 0, 3},
		{"negative pool", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := script(t)
			got := DrawIndices(src, tt.poolSize, tt.k)
			if len(got) != 0 {
				t.Fatalf("expected empty result, got %v", got)
			}
			if src.calls != 0 {
				t.Fatalf("expected no draws, got %d", src.calls)
			}
		})
	}
}

func TestDrawIndices_DistinctAndInRange(t *testing.T) {
	src := seeded(1)
	for poolSize := 1; poolSize <= 40; poolSize++ {
		for _, k := range []int{0, 1, 2, poolSize / 2, poolSize, poolSize + 3} {
			got := DrawIndices(src, poolSize, k)
			want := min(max(k, 0), poolSize)
			if len(got) != want {
				t.Fatalf("DrawIndices(%d, %d): expected %d indices, got %d", poolSize, k, want, len(got))
			}
			seen := make(map[int]bool, len(got))
			for _, idx := range got {
				if idx < 0 || idx >= poolSize {
					t.Fatalf("DrawIndices(%d, %d): index %d out of range", poolSize, k, idx)
				}
				if seen[idx] {
					t.Fatalf("DrawIndices(%d, %d): index %d repeated in %v", poolSize, k, idx, got)
				}
				seen[idx] = true
			}
		}
	}
}

func TestPickOne(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		src := script(t)
		_, err := PickOne(src, []string{})
		if !errors.Is(err, domain.ErrEmptyPool) {
			t.Fatalf("expected ErrEmptyPool, got %v", err)
		}
		if src.calls != 0 {
			t.Fatalf("expected no draws, got %d", src.calls)
		}
	})

	t.Run("picks drawn element", func(t *testing.T) {
		got, err := PickOne(script(t, 5), []string{"a", "b", "c"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "c" {
			t.Fatalf("expected c, got %q", got)
		}
	})
}

func TestPickBatch(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}

	t.Run("maps indices in draw order", func(t *testing.T) {
		got := PickBatch(script(t, 2, 2, 0), pool, 2)
		if !slices.Equal(got, []string{"c", "a"}) {
			t.Fatalf("expected [c a], got %v", got)
		}
	})

	t.Run("clamps count to pool size", func(t *testing.T) {
		got := PickBatch(seeded(7), pool, 10)
		if len(got) != len(pool) {
			t.Fatalf("expected %d items, got %d", len(pool), len(got))
		}
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		if !slices.Equal(sorted, pool) {
			t.Fatalf("expected every item exactly once, got %v", got)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1, 5} {
			if got := PickBatch(script(t), []string{}, n); len(got) != 0 {
				t.Fatalf("PickBatch([], %d): expected empty, got %v", n, got)
			}
		}
	})

	t.Run("does not mutate pool", func(t *testing.T) {
		before := slices.Clone(pool)
		_ = PickBatch(seeded(3), pool, 3)
		if !slices.Equal(before, pool) {
			t.Fatalf("pool mutated: %v", pool)
		}
	})
}

func TestPickMultiset(t *testing.T) {
	t.Run("five sets of three", func(t *testing.T) {
		pool := []int{10, 11, 12, 13, 14, 15}
		for seed := uint64(0); seed < 50; seed++ {
			sets := PickMultiset(seeded(seed), pool)
			if len(sets) != MultisetSets {
				t.Fatalf("expected %d sets, got %d", MultisetSets, len(sets))
			}
			for i, set := range sets {
				if len(set) != MultisetSize {
					t.Fatalf("set %d: expected %d items, got %d", i, MultisetSize, len(set))
				}
				if set[0] == set[1] || set[0] == set[2] || set[1] == set[2] {
					t.Fatalf("set %d is not internally distinct: %v", i, set)
				}
			}
		}
	})

	t.Run("sets are drawn independently", func(t *testing.T) {
		// Every set draws 0,1,2 again: no uniqueness across sets.
		values := make([]uint32, 0, 15)
		for range MultisetSets {
			values = append(values, 0, 1, 2)
		}
		src := script(t, values...)
		sets := PickMultiset(src, []string{"a", "b", "c", "d"})
		for i, set := range sets {
			if !slices.Equal(set, []string{"a", "b", "c"}) {
				t.Fatalf("set %d: expected [a b c], got %v", i, set)
			}
		}
		if src.calls != 15 {
			t.Fatalf("expected 15 draws, got %d", src.calls)
		}
	})

	t.Run("small pool truncates each set", func(t *testing.T) {
		sets := PickMultiset(seeded(11), []string{"x", "y"})
		if len(sets) != MultisetSets {
			t.Fatalf("expected %d sets, got %d", MultisetSets, len(sets))
		}
		for i, set := range sets {
			if len(set) != 2 {
				t.Fatalf("set %d: expected 2 items, got %v", i, set)
			}
		}
	})

	t.Run("empty pool yields empty sets", func(t *testing.T) {
		sets := PickMultiset(script(t), []string{})
		if len(sets) != MultisetSets {
			t.Fatalf("expected %d sets, got %d", MultisetSets, len(sets))
		}
		for i, set := range sets {
			if len(set) != 0 {
				t.Fatalf("set %d: expected empty, got %v", i, set)
			}
		}
	})
}

func TestPickOne_Uniformity(t *testing.T) {
	const (
		m      = 6
		trials = 60000
	)
	pool := []int{0, 1, 2, 3, 4, 5}
	src := seeded(2024)
	counts := make([]int, m)
	for range trials {
		v, err := PickOne(src, pool)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts[v]++
	}

	p := 1.0 / m
	// Six standard deviations of a binomial proportion.
	tolerance := 6 * math.Sqrt(p*(1-p)/trials)
	for i, c := range counts {
		freq := float64(c) / trials
		if math.Abs(freq-p) > tolerance {
			t.Errorf("index %d: frequency %.4f outside %.4f ± %.4f", i, freq, p, tolerance)
		}
	}
}

func TestCountingSource(t *testing.T) {
	src := NewCountingSource(script(t, 1, 1, 1, 0))
	got := DrawIndices(src, 2, 2)
	if !slices.Equal(got, []int{1, 0}) {
		t.Fatalf("expected [1 0], got %v", got)
	}
	if src.Calls() != 4 {
		t.Fatalf("expected 4 calls, got %d", src.Calls())
	}
	if rejected := src.Calls() - len(got); rejected != 2 {
		t.Fatalf("expected 2 rejections, got %d", rejected)
	}
}
