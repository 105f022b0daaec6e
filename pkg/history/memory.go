package history

import (
	"context"
	"sync"
)

// MemoryStore keeps records in memory, newest first, bounded by a cap.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []*Record
	cap  int
}

// NewMemoryStore creates an in-memory store holding at most max records.
// A non-positive max falls back to DefaultLimit.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultLimit
	}
	return &MemoryStore{cap: max}
}

// Save stores a record, evicting the oldest once the cap is reached.
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs = append([]*Record{rec}, s.recs...)
	if len(s.recs) > s.cap {
		s.recs = s.recs[:s.cap]
	}
	return nil
}

// Get retrieves a record by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, notFound(id)
}

// List returns the most recent records, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.recs) {
		limit = len(s.recs)
	}
	out := make([]*Record, limit)
	copy(out, s.recs[:limit])
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
