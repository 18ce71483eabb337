package storage

import (
	"fmt"
	"sort"
	"sync"
)

// BackendFactory opens a Store. location is a directory for "fs" and a
// namespace for "memory"; empty means the default.
type BackendFactory func(location string) (Store, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]BackendFactory)
)

func init() {
	RegisterBackend("fs", func(location string) (Store, error) {
		return NewFileSystemBackend(location)
	})
	RegisterBackend("memory", func(location string) (Store, error) {
		if location == "" {
			location = "default"
		}
		return NewInMemoryBackend(location)
	})
}

// RegisterBackend makes a backend available by name, replacing any previous
// registration.
func RegisterBackend(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetBackend opens the named backend at location.
func GetBackend(name, location string) (Store, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown storage backend %q (available: %v)", name, Backends())
	}
	return factory(location)
}
