package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sync"
	"time"
)

// FileSystemBackend implements Store as a JSON document in a directory. It
// holds an exclusive lock on the directory until closed, so two instances
// never interleave writes.
type FileSystemBackend struct {
	mu       sync.Mutex
	dir      string
	lockFile *os.File
	values   map[string]string
}

// NewFileSystemBackend opens the store in dir, or in StateDirectory when
// dir is empty. It fails with ErrWouldBlock if another process has it open.
func NewFileSystemBackend(dir string) (*FileSystemBackend, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get state directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lockFile, err := acquireFileLock(LockFilePath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire state lock: %w", err)
	}

	values, err := loadDocument(StateFilePath(dir))
	if err != nil {
		_ = releaseFileLock(lockFile)
		return nil, err
	}

	return &FileSystemBackend{
		dir:      dir,
		lockFile: lockFile,
		values:   values,
	}, nil
}

func loadDocument(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state file %s: %w", path, err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]string)
	}
	return doc.Values, nil
}

// Dir returns the directory backing the store.
func (b *FileSystemBackend) Dir() string { return b.dir }

// Get implements Store.
func (b *FileSystemBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lockFile == nil {
		return "", false, ErrClosed
	}
	v, ok := b.values[key]
	return v, ok, nil
}

// Set implements Store.
func (b *FileSystemBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lockFile == nil {
		return ErrClosed
	}
	next := maps.Clone(b.values)
	next[key] = value
	if err := b.save(next); err != nil {
		return err
	}
	b.values = next
	return nil
}

// Remove implements Store.
func (b *FileSystemBackend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lockFile == nil {
		return ErrClosed
	}
	if _, ok := b.values[key]; !ok {
		return nil
	}
	next := maps.Clone(b.values)
	delete(next, key)
	if err := b.save(next); err != nil {
		return err
	}
	b.values = next
	return nil
}

func (b *FileSystemBackend) save(values map[string]string) error {
	data, err := json.MarshalIndent(stateDocument{
		Version:   CurrentSchemaVersion,
		UpdatedAt: time.Now(),
		Values:    values,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := AtomicWriteFile(StateFilePath(b.dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Close releases the directory lock.
func (b *FileSystemBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lockFile == nil {
		return nil
	}
	if err := releaseFileLock(b.lockFile); err != nil {
		return fmt.Errorf("failed to release state lock: %w", err)
	}
	b.lockFile = nil
	return nil
}

// Ensure FileSystemBackend implements Store at compile time
var _ Store = (*FileSystemBackend)(nil)
