package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-markup/internal/fileutil"
	"github.com/alnah/go-markup/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxAssetNameLength   = 64
	MaxTitleLength       = 200
	MaxExtensionLength   = 16
	MaxExtensions        = 32
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxTimeoutLength     = 20
)

// Defaults applied by DefaultConfig.
const (
	DefaultTitle       = "Markup File"
	DefaultStyle       = "default"
	DefaultTemplate    = "default"
	DefaultPageSize    = "letter"
	DefaultOrientation = "portrait"
	DefaultMargin      = 0.5
	DefaultTimeout     = "30s"
)

// DefaultExtensions are the file extensions discovered in directory mode.
var DefaultExtensions = []string{".mu", ".markup"}

// SearchDirName is the directory under os.UserConfigDir searched for named configs.
const SearchDirName = "go-markup"

// Config holds all configuration for markup compilation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Style    string         `yaml:"style"`    // style name or CSS file path; empty = none
	Template string         `yaml:"template"` // template name or HTML file path
	Assets   AssetsConfig   `yaml:"assets"`
	Document DocumentConfig `yaml:"document"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // used when no input argument is given
	Extensions []string `yaml:"extensions"` // discovered in directory mode
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DocumentConfig defines page-level defaults.
type DocumentConfig struct {
	DefaultTitle string `yaml:"defaultTitle"` // used when the source has no level-1 header
}

// PDFConfig defines optional PDF output.
type PDFConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
	Timeout     string  `yaml:"timeout"`     // Go duration, e.g. "30s"
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidField, p.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidField, p.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and formats. Page values themselves are
// validated by the converter when PDF output is requested.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"style", c.Style, MaxPathLength},
		{"template", c.Template, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"document.defaultTitle", c.Document.DefaultTitle, MaxTitleLength},
		{"pdf.size", c.PDF.Size, MaxPageSizeLength},
		{"pdf.orientation", c.PDF.Orientation, MaxOrientationLength},
		{"pdf.timeout", c.PDF.Timeout, MaxTimeoutLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Input.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: input.extensions (%d entries, max %d)", ErrFieldTooLong, len(c.Input.Extensions), MaxExtensions)
	}
	for i, ext := range c.Input.Extensions {
		name := fmt.Sprintf("input.extensions[%d]", i)
		if err := validateFieldLength(name, ext, MaxExtensionLength); err != nil {
			return err
		}
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], `./\`) {
			return fmt.Errorf("%w: %s %q (must look like \".mu\")", ErrInvalidField, name, ext)
		}
	}

	if c.PDF.Margin < 0 {
		return fmt.Errorf("%w: pdf.margin must not be negative, got %.2f", ErrInvalidField, c.PDF.Margin)
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Style:    DefaultStyle,
		Template: DefaultTemplate,
		Document: DocumentConfig{DefaultTitle: DefaultTitle},
		PDF: PDFConfig{
			Size:        DefaultPageSize,
			Orientation: DefaultOrientation,
			Margin:      DefaultMargin,
			Timeout:     DefaultTimeout,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, SearchDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
