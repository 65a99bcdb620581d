package inventory

import "sync"

// RecordStore provides read access to the loaded inventory. Stores are
// built once at startup and are read-only afterwards; the engine takes
// a store at construction time instead of reaching for global state so
// tests can hand it fixture data.
type RecordStore interface {
	// GetByID returns the record with the given identifier.
	GetByID(id int) (Record, bool)
	// All returns every record in insertion order.
	All() []Record
	// Len returns the number of records held.
	Len() int
}

// MemoryStore is a thread-safe in-memory RecordStore.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[int]Record
	order []int
}

// NewMemoryStore builds a store from normalized records. Insertion
// order is preserved for deterministic scans. A duplicate identifier
// keeps the first occurrence, preserving the uniqueness invariant.
func NewMemoryStore(records []Record) *MemoryStore {
	s := &MemoryStore{
		byID:  make(map[int]Record, len(records)),
		order: make([]int, 0, len(records)),
	}
	for _, r := range records {
		if _, exists := s.byID[r.ID]; exists {
			continue
		}
		s.byID[r.ID] = r
		s.order = append(s.order, r.ID)
	}
	return s
}

// GetByID returns the record with the given identifier.
func (s *MemoryStore) GetByID(id int) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	return r, ok
}

// All returns a copy of every record in insertion order.
func (s *MemoryStore) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of records held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}
