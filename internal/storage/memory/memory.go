// Package memory provides an in-memory ledger store with the same contract
// as the SQLite repository. It backs tests and database-free runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"libretto/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]core.Record
}

func New() *Store {
	return &Store{nextID: 1, items: make(map[int64]core.Record)}
}

// ListAll returns every record ordered by id descending.
func (s *Store) ListAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]core.Record, 0, len(s.items))
	for _, r := range s.items {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	return records, nil
}

// Insert stores the record and returns the assigned id.
func (s *Store) Insert(_ context.Context, rec core.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.items[rec.ID] = rec
	return rec.ID, nil
}

// Update overwrites the record matching id; missing ids are a no-op.
func (s *Store) Update(_ context.Context, id int64, rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return nil
	}
	rec.ID = id
	s.items[id] = rec
	return nil
}

// Delete removes the record matching id; missing ids are a no-op.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}
