package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	markup "github.com/alnah/go-markup"
	"github.com/alnah/go-markup/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputIsInput      = errors.New("output path would overwrite the input")
)

// Output extensions, without the leading dot.
const (
	htmlExtension = "html"
	pdfExtension  = "pdf"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles lists the files to convert.
// A single file is accepted whatever its extension; in a directory only files
// whose extension is in extensions (case-insensitive) are collected, recursively.
func discoverFiles(inputPath, outputDir string, extensions []string, outExt string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		outPath := resolveOutputPath(inputPath, outputDir, "", outExt)
		if err := checkOutputPath(inputPath, outPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !hasExtension(path, extensions) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, outExt)
		if err := checkOutputPath(path, outPath); err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// hasExtension reports whether path ends in one of extensions.
func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, want := range extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// resolveOutputPath determines the output path for a source file.
//
// Without an output directory the source extension is replaced in place.
// An output ending in the output extension is used as the file itself.
// In directory mode the layout below baseInputDir is mirrored.
func resolveOutputPath(inputPath, outputDir, baseInputDir, outExt string) string {
	if outputDir == "" {
		return fileutil.ReplaceExtension(inputPath, outExt)
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), "."+outExt) {
		return outputDir
	}

	name := fileutil.ReplaceExtension(filepath.Base(inputPath), outExt)

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// checkOutputPath rejects an output that resolves to the source file,
// e.g. "page.html" compiled in place.
func checkOutputPath(inputPath, outputPath string) error {
	if filepath.Clean(inputPath) == filepath.Clean(outputPath) {
		return fmt.Errorf("%w: %s (use --output)", ErrOutputIsInput, inputPath)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > markup.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, markup.MaxPoolSize)
	}
	return nil
}
