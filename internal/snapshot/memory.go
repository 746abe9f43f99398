// Package snapshot persists the last successfully detected header field
// list per document family. The store is process-wide shared state with
// last-write-wins semantics; a stale snapshot only degrades fallback
// quality for headerless documents, it never corrupts output.
package snapshot

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots in process memory. It is the default store
// and the one tests substitute for the durable backend.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]string)}
}

// Load returns the stored field names for a family. A cold store simply
// reports absence.
func (s *MemoryStore) Load(_ context.Context, family string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.data[family]
	if !ok {
		return nil, false, nil
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out, true, nil
}

// Save replaces the family's snapshot, last write wins.
func (s *MemoryStore) Save(_ context.Context, family string, fields []string) error {
	cp := make([]string, len(fields))
	copy(cp, fields)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[family] = cp
	return nil
}

// Close satisfies the store contract; nothing to release.
func (s *MemoryStore) Close() error { return nil }
