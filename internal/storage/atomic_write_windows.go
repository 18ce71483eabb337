//go:build windows

package storage

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// renameFile replaces newpath with oldpath using MoveFileEx, which, unlike
// os.Rename on older Windows versions, overwrites and flushes in one call.
func renameFile(oldpath, newpath string) error {
	from, err := windows.UTF16PtrFromString(oldpath)
	if err != nil {
		return fmt.Errorf("invalid source path: %w", err)
	}
	to, err := windows.UTF16PtrFromString(newpath)
	if err != nil {
		return fmt.Errorf("invalid destination path: %w", err)
	}
	return windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}
