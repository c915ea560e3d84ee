//go:build windows

package fileutil

import "os"

// WriteFileAtomic writes data to path. Rename over an open file is not
// atomic on Windows, so this is a plain write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
