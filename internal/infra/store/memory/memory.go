package memory

import (
	"context"
	"sync"

	"github.com/mittagsplan/loader/internal/core/domain"
	"github.com/mittagsplan/loader/internal/infra/store"
)

// MetaStore is an in-process store.MetaStore, used in tests and when no
// persistent metadata cache is configured.
type MetaStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMetaStore() *MetaStore {
	return &MetaStore{values: make(map[string]string)}
}

func (s *MetaStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *MetaStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MetaStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// DocumentStore is an in-process store.DocumentStore.
type DocumentStore struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{entries: make(map[string]domain.Entry)}
}

func (s *DocumentStore) Set(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Get retrieves an entry by ID; the second result reports presence.
func (s *DocumentStore) Get(id string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Entries returns a snapshot of all stored entries.
func (s *DocumentStore) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}
