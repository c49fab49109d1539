package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process store used in tests and local development.
// It can be told to fail, which is how recorder-failure tolerance is
// exercised.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record

	// FailWith, when set, makes every Append return this error.
	FailWith error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores the record in memory.
func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	s.records = append(s.records, rec)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// All returns a copy of every stored record.
func (s *MemoryStore) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// ByUser returns the records a user holds in a collection.
func (s *MemoryStore) ByUser(userID, collection string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, rec := range s.records {
		if rec.UserID == userID && rec.Collection == collection {
			out = append(out, rec)
		}
	}
	return out
}
