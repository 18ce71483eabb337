package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// RenameError is returned by AtomicWriteFile when the final rename fails.
// The temporary file has been removed by the time it is returned.
type RenameError interface {
	error
	TempPath() string
}

type renameError struct {
	tempPath string
	err      error
}

func (e *renameError) Error() string {
	return fmt.Sprintf("failed to rename %s into place: %v", e.tempPath, e.err)
}

func (e *renameError) Unwrap() error { return e.err }

func (e *renameError) TempPath() string { return e.tempPath }

// AtomicWriteFile writes data to a temp file in the target directory, syncs
// it, then renames it over filename, so readers see either the old or the
// new content.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := renameFile(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return &renameError{tempPath: tmpPath, err: err}
	}
	return nil
}
