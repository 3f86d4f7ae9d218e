// Package kv provides key-value store adapters behind ports.KVStore. The
// in-memory store mirrors the browser local-storage persistence of the source
// system; the Postgres store serves server deployments.
package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory KVStore, safe for concurrent use. Suitable for
// tests and demo mode.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get returns the stored value for key
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.entries[key]
	if !found {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored slice
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores value under key
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = stored
	return nil
}

// Delete removes key; deleting a missing key is a no-op
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Keys lists stored keys with the given prefix in sorted order
func (m *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
