package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	stateFileName = "state.json"
	lockFileName  = "state.lock"
)

var (
	fallbackOnce sync.Once
	fallbackDir  string
	fallbackErr  error
)

// defaultStateDirectory returns <UserConfigDir>/pocket-dos, falling back to
// a temp directory (stable for the life of the process) when no config
// directory is available.
func defaultStateDirectory() (string, error) {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pocket-dos"), nil
	}
	fallbackOnce.Do(func() {
		fallbackDir, fallbackErr = os.MkdirTemp("", "pocketdos-state-")
	})
	if fallbackErr != nil {
		return "", fmt.Errorf("failed to create fallback state directory: %w", fallbackErr)
	}
	return fallbackDir, nil
}

// StateDirectory returns the directory used when no explicit directory is
// configured. Tests override it with SetTestPaths.
var StateDirectory = defaultStateDirectory

// SetTestPaths points StateDirectory at dir.
func SetTestPaths(dir string) {
	StateDirectory = func() (string, error) { return dir, nil }
}

// ResetPaths restores the default StateDirectory.
func ResetPaths() {
	StateDirectory = defaultStateDirectory
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return StateDirectory()
}

// StateFilePath returns the path of the state document within dir.
func StateFilePath(dir string) string { return filepath.Join(dir, stateFileName) }

// LockFilePath returns the path of the lock file within dir.
func LockFilePath(dir string) string { return filepath.Join(dir, lockFileName) }
