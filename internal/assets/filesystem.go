package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a directory laid out like the
// embedded one: {base}/styles/*.css and {base}/templates/*.html.
type FilesystemLoader struct {
	base string // absolute, symlinks resolved
}

// NewFilesystemLoader opens basePath, which must be a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	base, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}

	if _, err := os.ReadDir(base); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, base)
		case isNotDir(base):
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, base)
		}
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{base: base}, nil
}

func isNotDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// Load reads {base}/{kind.Dir}/{name}{kind.Ext}.
func (f *FilesystemLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	file := filepath.Join(f.base, kind.Dir, name+kind.Ext)
	if err := f.contain(file); err != nil {
		return "", err
	}

	content, err := os.ReadFile(file) // #nosec G304 -- contained in base
	if errors.Is(err, fs.ErrNotExist) {
		return "", kind.missing(name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contain rejects files whose real path lies outside the base directory.
// A file that does not exist yet is checked lexically.
func (f *FilesystemLoader) contain(file string) error {
	if resolved, err := filepath.EvalSymlinks(file); err == nil {
		file = resolved
	}

	rel, err := filepath.Rel(f.base, file)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, file, f.base)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
