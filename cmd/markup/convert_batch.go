package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	markup "github.com/alnah/go-markup"
	"github.com/alnah/go-markup/internal/fileutil"
	"github.com/alnah/go-markup/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrServiceInit = errors.New("failed to initialize converter")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input markup.Input) (*markup.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*markup.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	pdf  bool
	page *markup.PageSettings
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Bytes      int // Size of the written output
	Lines      int // Source lines compiled
}

// convertBatch processes files concurrently using the converter pool.
// Results are returned in the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil || conv == nil {
				// Converter creation failed, mark the jobs this worker drains as failed
				initErr := ErrServiceInit
				if err != nil {
					initErr = fmt.Errorf("%w: %w", ErrServiceInit, err)
				}
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       initErr,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	source, err := fileutil.ReadText(f.InputPath)
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	convResult, err := conv.Convert(ctx, markup.Input{
		Source: source,
		PDF:    params.pdf,
		Page:   params.page,
	})
	if err != nil {
		return done(withConvertHint(err))
	}

	data := convResult.HTML
	if params.pdf {
		data = convResult.PDF
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return done(fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, data, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Bytes = len(data)
	result.Lines = convResult.Lines
	return done(nil)
}

// withConvertHint appends an actionable hint to browser and timeout failures.
func withConvertHint(err error) error {
	switch {
	case errors.Is(err, markup.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, markup.ErrPageLoad):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the error of the first failed result, or nil.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %d lines, %v)\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Bytes)), r.Lines, r.Duration.Round(time.Millisecond)) // #nosec G115 -- byte counts are non-negative
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
