package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Official-DomG/matchbot/internal/domain/types"
)

const defaultCapacity = 50

// MemoryStore is an in-process Store. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	runs     []types.RunSummary // oldest first
	byID     map[string]int     // id -> index in runs
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: defaultCapacity,
		byID:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Save(_ context.Context, run types.RunSummary) error {
	if run.ID == "" {
		return ErrMissingID
	}
	run.Leagues = slices.Clone(run.Leagues)
	run.Dates = slices.Clone(run.Dates)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[run.ID]; ok {
		s.runs = slices.Delete(s.runs, i, i+1)
	}
	s.runs = append(s.runs, run)
	if over := len(s.runs) - s.capacity; over > 0 {
		s.runs = slices.Delete(s.runs, 0, over)
	}
	s.reindex()
	return nil
}

func (s *MemoryStore) Latest(_ context.Context) (types.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return types.RunSummary{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (types.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return types.RunSummary{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.runs[i], nil
}

func (s *MemoryStore) Recent(_ context.Context, n int) ([]types.RunSummary, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n = min(n, len(s.runs))
	out := make([]types.RunSummary, 0, n)
	for i := len(s.runs) - 1; i >= len(s.runs)-n; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// reindex rebuilds byID; callers hold the write lock.
func (s *MemoryStore) reindex() {
	clear(s.byID)
	for i, r := range s.runs {
		s.byID[r.ID] = i
	}
}
