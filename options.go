package markup

import (
	"time"

	"github.com/alnah/go-markup/internal/pipeline"
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path, or CSS content
	resolvedStyle string // CSS content after resolution
	templateInput string // name or file path
	assetPath     string
	defaultTitle  string
}

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("markup: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the CSS injected into every page.
// Accepts a style name ("default", "plain"), a file path ("./custom.css"),
// or CSS content ("body { ... }"). Without it no style is injected.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithTemplate sets the page template by name ("default", "minimal") or
// file path. The template must contain {{BODY}} and {{TITLE}} exactly once.
func WithTemplate(template string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = template
	}
}

// WithAssetPath configures a directory holding custom styles/ and templates/.
// Names missing from it fall back to the embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithUnicodeNormalization composes the source to Unicode NFC before it is
// escaped, so "e" followed by a combining acute accent becomes "é".
// By default the text is left exactly as written.
func WithUnicodeNormalization() Option {
	return func(c *Converter) {
		c.preprocessor = &pipeline.SourcePreprocessor{NFC: true}
	}
}

// WithDefaultTitle sets the title used for documents without a level-1 header.
func WithDefaultTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.defaultTitle = title
	}
}
