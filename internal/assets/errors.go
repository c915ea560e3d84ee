package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names that are empty, too long, or carry
	// anything beyond letters, digits, '-' and '_'.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")

	// ErrPathTraversal means a name resolved, through symlinks, outside the
	// asset directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
