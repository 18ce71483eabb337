package storage

import (
	"fmt"
	"maps"
	"sync"
)

var (
	inMemoryMu     sync.Mutex
	inMemoryStores = make(map[string]map[string]string)
)

// InMemoryBackend implements Store on a process-wide map, shared by every
// backend opened with the same namespace. Intended for tests and for runs
// that must leave no trace on disk.
type InMemoryBackend struct {
	namespace string
	closed    bool
}

// NewInMemoryBackend opens the namespace.
func NewInMemoryBackend(namespace string) (*InMemoryBackend, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &InMemoryBackend{namespace: namespace}, nil
}

// Get implements Store.
func (b *InMemoryBackend) Get(key string) (string, bool, error) {
	inMemoryMu.Lock()
	defer inMemoryMu.Unlock()
	if b.closed {
		return "", false, ErrClosed
	}
	v, ok := inMemoryStores[b.namespace][key]
	return v, ok, nil
}

// Set implements Store.
func (b *InMemoryBackend) Set(key, value string) error {
	inMemoryMu.Lock()
	defer inMemoryMu.Unlock()
	if b.closed {
		return ErrClosed
	}
	m := inMemoryStores[b.namespace]
	if m == nil {
		m = make(map[string]string)
		inMemoryStores[b.namespace] = m
	}
	m[key] = value
	return nil
}

// Remove implements Store.
func (b *InMemoryBackend) Remove(key string) error {
	inMemoryMu.Lock()
	defer inMemoryMu.Unlock()
	if b.closed {
		return ErrClosed
	}
	delete(inMemoryStores[b.namespace], key)
	return nil
}

// Close marks the backend closed. The namespace keeps its values.
func (b *InMemoryBackend) Close() error {
	inMemoryMu.Lock()
	defer inMemoryMu.Unlock()
	b.closed = true
	return nil
}

// Snapshot returns a copy of every value in namespace.
func Snapshot(namespace string) map[string]string {
	inMemoryMu.Lock()
	defer inMemoryMu.Unlock()
	return maps.Clone(inMemoryStores[namespace])
}

// ClearAllInMemoryStores drops every namespace.
func ClearAllInMemoryStores() {
	inMemoryMu.Lock()
	defer inMemoryMu.Unlock()
	inMemoryStores = make(map[string]map[string]string)
}

// Ensure InMemoryBackend implements Store at compile time
var _ Store = (*InMemoryBackend)(nil)
