package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-markup/internal/config"
)

// envPrefix is the prefix of every recognized environment variable.
const envPrefix = "MARKUP_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MARKUP_CONFIG: config file name or path
	Style      string        // MARKUP_STYLE: style name, path, or inline CSS
	Template   string        // MARKUP_TEMPLATE: page template name or path
	Title      string        // MARKUP_TITLE: default page title
	InputDir   string        // MARKUP_INPUT_DIR: default input directory
	OutputDir  string        // MARKUP_OUTPUT_DIR: default output directory
	PageSize   string        // MARKUP_PAGE_SIZE: letter, a4, legal
	Timeout    time.Duration // MARKUP_TIMEOUT: PDF generation timeout
	Workers    int           // MARKUP_WORKERS: parallel workers
}

// knownEnvVars lists valid MARKUP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MARKUP_CONFIG":     true,
	"MARKUP_STYLE":      true,
	"MARKUP_TEMPLATE":   true,
	"MARKUP_TITLE":      true,
	"MARKUP_INPUT_DIR":  true,
	"MARKUP_OUTPUT_DIR": true,
	"MARKUP_PAGE_SIZE":  true,
	"MARKUP_TIMEOUT":    true,
	"MARKUP_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed MARKUP_TIMEOUT and MARKUP_WORKERS values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MARKUP_CONFIG"),
		Style:      os.Getenv("MARKUP_STYLE"),
		Template:   os.Getenv("MARKUP_TEMPLATE"),
		Title:      os.Getenv("MARKUP_TITLE"),
		InputDir:   os.Getenv("MARKUP_INPUT_DIR"),
		OutputDir:  os.Getenv("MARKUP_OUTPUT_DIR"),
		PageSize:   os.Getenv("MARKUP_PAGE_SIZE"),
	}

	if timeout := os.Getenv("MARKUP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MARKUP_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MARKUP_* variables,
// in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config values with the environment variables that are set.
// Run after loading the config file and before mergeFlags, which gives
// CLI flags > env vars > config file > defaults.
// The timeout is resolved separately by resolveTimeoutWithEnv.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Template != "" {
		cfg.Template = env.Template
	}
	if env.Title != "" {
		cfg.Document.DefaultTitle = env.Title
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.PDF.Size = env.PageSize
	}
}
