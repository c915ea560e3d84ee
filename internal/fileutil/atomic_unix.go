//go:build !windows

package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

// WriteFileAtomic writes data to path so that readers see either the old
// file or the complete new one, never a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	pending, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := pending.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
