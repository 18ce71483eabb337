//go:build !windows

package storage

import "os"

// renameFile replaces newpath with oldpath. rename(2) is atomic on POSIX.
func renameFile(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
