// Package storage persists small string values (the page the player is on,
// high scores) across runs, in the spirit of a browser's local storage.
package storage

import "errors"

// ErrWouldBlock is returned when the state directory is locked by another
// running instance.
var ErrWouldBlock = errors.New("storage: state is locked by another process")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Store is a persistent string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, persisting it before returning.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Close releases any resources (locks) held by the store.
	Close() error
}
