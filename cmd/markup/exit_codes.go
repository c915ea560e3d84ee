package main

import (
	"errors"
	"os"

	markup "github.com/alnah/go-markup"
	"github.com/alnah/go-markup/internal/assets"
	"github.com/alnah/go-markup/internal/config"
)

// Exit codes for the markup CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, markup.ErrBrowserConnect) ||
		errors.Is(err, markup.ErrPageCreate) ||
		errors.Is(err, markup.ErrPageLoad) ||
		errors.Is(err, markup.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2), checked before I/O because
	// a missing config file is a usage problem.
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, markup.ErrInvalidPageSize) ||
		errors.Is(err, markup.ErrInvalidOrientation) ||
		errors.Is(err, markup.ErrInvalidMargin) ||
		errors.Is(err, markup.ErrStyleNotFound) ||
		errors.Is(err, markup.ErrTemplateNotFound) ||
		errors.Is(err, markup.ErrInvalidTemplate) ||
		errors.Is(err, markup.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrOutputIsInput) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, markup.ErrAssetFile) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	return ExitGeneral
}
