package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// MemoryStore keeps collections in memory. It backs tests and previews.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	failures    map[string]error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string]map[string][]byte{},
		failures:    map[string]error{},
	}
}

// AddCollection registers an empty collection.
func (m *MemoryStore) AddCollection(collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = map[string][]byte{}
	}
}

// Put stores a copy of data under collection/name, creating the collection.
func (m *MemoryStore) Put(collection, name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.collections[collection]
	if !ok {
		entries = map[string][]byte{}
		m.collections[collection] = entries
	}
	entries[name] = append([]byte(nil), data...)
}

// FailRead makes subsequent reads of collection/name return err.
func (m *MemoryStore) FailRead(collection, name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[collection+"/"+name] = err
}

// Entries lists the documents of collection in name order.
func (m *MemoryStore) Entries(ctx context.Context, collection string) ([]interfaces.StoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]interfaces.StoreEntry, len(names))
	for i, name := range names {
		out[i] = interfaces.StoreEntry{Name: name}
	}
	return out, nil
}

// Read returns a copy of the stored bytes.
func (m *MemoryStore) Read(ctx context.Context, collection, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}
	if err := m.failures[collection+"/"+name]; err != nil {
		return nil, fmt.Errorf("storage: read %s/%s: %w", collection, name, err)
	}
	data, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrEntryNotFound, collection, name)
	}
	return append([]byte(nil), data...), nil
}

var _ interfaces.DocumentStore = (*MemoryStore)(nil)
