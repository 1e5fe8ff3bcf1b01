package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/pkg/metrics"
)

// MemoryStore keeps the current snapshot behind an atomic pointer so readers
// never block on a load cycle. A short history of cycle ids is kept for
// the stats endpoint.
type MemoryStore struct {
	current atomic.Pointer[Snapshot]

	mu      sync.Mutex
	history []string
	keep    int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{keep: defaultHistory}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish swaps in s. The snapshot must not be modified afterwards.
func (m *MemoryStore) Publish(_ context.Context, s *Snapshot) error {
	if s == nil {
		return ErrNilSnapshot
	}
	s.index()
	m.current.Store(s)

	m.mu.Lock()
	m.history = append(m.history, s.CycleID)
	if len(m.history) > m.keep {
		m.history = m.history[len(m.history)-m.keep:]
	}
	m.mu.Unlock()

	metrics.UpdateRostersTotal(len(s.Rosters))
	metrics.UpdatePlayersTotal(s.Players())
	metrics.UpdateSnapshotLastUnix(float64(s.LoadedAt.Unix()))
	return nil
}

// Current returns the latest snapshot.
func (m *MemoryStore) Current(context.Context) *Snapshot {
	return m.current.Load()
}

// Roster looks a roster up by its key.
func (m *MemoryStore) Roster(ctx context.Context, key string) (model.Roster, error) {
	s := m.Current(ctx)
	if s == nil {
		return model.Roster{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	i, ok := s.byKey[key]
	if !ok {
		return model.Roster{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return cloneRoster(s.Rosters[i]), nil
}

// Rosters returns all rosters in their reconciled order.
func (m *MemoryStore) Rosters(ctx context.Context) []model.Roster {
	s := m.Current(ctx)
	if s == nil {
		return nil
	}
	out := make([]model.Roster, len(s.Rosters))
	for i, r := range s.Rosters {
		out[i] = cloneRoster(r)
	}
	return out
}

// Count returns the number of rosters in the current snapshot.
func (m *MemoryStore) Count(ctx context.Context) int {
	if s := m.Current(ctx); s != nil {
		return len(s.Rosters)
	}
	return 0
}

// History returns the most recent cycle ids, oldest first.
func (m *MemoryStore) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}
