package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	markup "github.com/alnah/go-markup"
	"github.com/alnah/go-markup/internal/assets"
	"github.com/alnah/go-markup/internal/config"
	"github.com/alnah/go-markup/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrNoFiles        = errors.New("no markup files found")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Environment overrides the file, CLI flags override both
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.PDF.Timeout)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	outExt := htmlExtension
	if cfg.PDF.Enabled {
		outExt = pdfExtension
	}

	files, err := discoverFiles(inputPath, outputDir, cfg.Input.Extensions, outExt)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
		if err := validateWorkers(workers); err != nil {
			return fmt.Errorf("MARKUP_WORKERS: %w", err)
		}
	}
	poolSize := min(markup.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool, err := env.NewPool(poolSize, converterOptions(cfg, timeout)...)
	if err != nil {
		return withAssetHint(err)
	}
	defer func() {
		if closeErr := pool.Close(); closeErr != nil && flags.common.verbose {
			fmt.Fprintf(env.Stderr, "warning: closing converters: %v\n", closeErr)
		}
	}()

	params := &conversionParams{
		pdf:  cfg.PDF.Enabled,
		page: page,
	}

	results := convertBatch(ctx, pool, files, params, env)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failedCount, firstError(results))
	}

	return nil
}

// loadConfig loads the config named by the flag, or by MARKUP_CONFIG when the
// flag is unset. Without either, defaults are returned.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Asset flags
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Document flags
	if flags.title != "" {
		cfg.Document.DefaultTitle = flags.title
	}

	// PDF flags
	if flags.pdf {
		cfg.PDF.Enabled = true
	}
	if flags.page.size != "" {
		cfg.PDF.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.PDF.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.PDF.Margin = flags.page.margin
	}

	// Disable flags
	if flags.assets.noStyle {
		cfg.Style = ""
	}
}

// resolveTimeoutWithEnv picks the PDF timeout: flag > env > config.
// Zero means the converter default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parseTimeout(configValue)
	}
	return 0, nil
}

// parseTimeout parses a Go duration that must be positive.
func parseTimeout(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, value)
	}
	return d, nil
}

// buildPageSettings returns validated page settings for PDF output,
// or nil when PDF output is off.
func buildPageSettings(cfg *config.Config) (*markup.PageSettings, error) {
	if !cfg.PDF.Enabled {
		return nil, nil
	}

	ps := &markup.PageSettings{
		Size:        cfg.PDF.Size,
		Orientation: cfg.PDF.Orientation,
		Margin:      cfg.PDF.Margin,
	}

	// Apply defaults
	if ps.Size == "" {
		ps.Size = markup.PageSizeLetter
	}
	if ps.Orientation == "" {
		ps.Orientation = markup.OrientationPortrait
	}
	if ps.Margin == 0 {
		ps.Margin = markup.DefaultMargin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}

	return ps, nil
}

// converterOptions translates the effective config into converter options.
func converterOptions(cfg *config.Config, timeout time.Duration) []markup.Option {
	var opts []markup.Option
	if timeout > 0 {
		opts = append(opts, markup.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, markup.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Style != "" {
		opts = append(opts, markup.WithStyle(cfg.Style))
	}
	if cfg.Template != "" {
		opts = append(opts, markup.WithTemplate(cfg.Template))
	}
	if cfg.Document.DefaultTitle != "" {
		opts = append(opts, markup.WithDefaultTitle(cfg.Document.DefaultTitle))
	}
	return opts
}

// withAssetHint appends the available built-in names to asset lookup failures.
func withAssetHint(err error) error {
	switch {
	case errors.Is(err, markup.ErrStyleNotFound):
		return fmt.Errorf("%w%s", err, hints.ForAssetNotFound(assets.StyleNames()))
	case errors.Is(err, markup.ErrTemplateNotFound):
		return fmt.Errorf("%w%s", err, hints.ForAssetNotFound(assets.TemplateNames()))
	case errors.Is(err, markup.ErrInvalidTemplate):
		return fmt.Errorf("%w%s", err, hints.ForInvalidTemplate())
	}
	return err
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
