// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile stores content in a new "markup-*.{extension}" file under
// the system temp directory. The caller must run cleanup once done with it.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "markup-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// ValidateExtension rejects empty extensions and ones that could leave the
// temp directory.
func ValidateExtension(extension string) error {
	switch {
	case extension == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(extension, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExtension swaps the extension of the final path element for ext
// (given without a leading dot). A name without an extension gets ext
// appended; dots in parent directories are never touched.
//
// Examples:
//   - "notes.mu" -> "notes.html"
//   - "README" -> "README.html"
//   - "a.b/c" -> "a.b/c.html"
//   - "archive.tar.gz" -> "archive.tar.html"
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s names a file rather than a built-in asset:
// any '/' or '\' makes it a path, so "default" is a name and "./print.css"
// or "C:\styles\print.css" are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
