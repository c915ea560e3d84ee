package markup

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/alnah/go-markup/internal/assets"
	"github.com/alnah/go-markup/internal/fileutil"
	"github.com/alnah/go-markup/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor = (*pipeline.SourcePreprocessor)(nil)
	_ pipeline.CSSInjector  = (*pipeline.CSSInjection)(nil)
	_ pdfConverter          = (*rodConverter)(nil)
	_ pdfRenderer           = (*rodRenderer)(nil)
)

// Converter compiles markup documents into styled HTML pages, and optionally PDF.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	preprocessor pipeline.Preprocessor
	cssInjector  pipeline.CSSInjector
	page         *pipeline.PageTemplate
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithTemplate, WithAssetPath).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			templateInput: assets.DefaultTemplateName,
			defaultTitle:  DefaultTitle,
		},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.SourcePreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if err := c.resolveTemplate(); err != nil {
		return nil, err
	}

	// Browser is started lazily on the first PDF conversion.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the pipeline and returns the compiled page.
// The context is used for cancellation and, for PDF output, as rendering deadline.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if input.PDF {
		if err := input.Page.Validate(); err != nil {
			return nil, err
		}
	}

	source, err := c.preprocessor.Preprocess(ctx, input.Source)
	if err != nil {
		return nil, err
	}

	doc := pipeline.Assemble(source)

	// Discovered titles are already escaped; caller-provided ones are not.
	title := doc.TitleOr(html.EscapeString(c.cfg.defaultTitle))
	if input.Title != "" {
		title = html.EscapeString(input.Title)
	}

	htmlContent := c.page.Render(doc.BodyHTML(), title)

	// Converter style first, input CSS last so it can override.
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		if cssContent != "" {
			cssContent += "\n"
		}
		cssContent += input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{
		HTML:  []byte(htmlContent),
		Title: title,
		Lines: doc.Lines,
	}

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, input.Page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	// CSS content may contain slashes (comments, urls), so check it first.
	if isCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: style %q: %v", ErrAssetFile, input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.Load(assets.Style, input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveTemplate loads the page template by name or path and parses it.
func (c *Converter) resolveTemplate() error {
	input := c.cfg.templateInput

	var text string
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: template %q: %v", ErrAssetFile, input, err)
		}
		text = string(content)
	} else {
		var err error
		text, err = c.assetLoader.Load(assets.Template, input)
		if err != nil {
			return fmt.Errorf("loading template %q: %w", input, err)
		}
	}

	page, err := pipeline.ParseTemplate(text)
	if err != nil {
		return fmt.Errorf("template %q: %w", input, err)
	}
	c.page = page
	return nil
}

// isCSS reports whether a style input is inline CSS rather than a name.
func isCSS(s string) bool {
	return strings.Contains(s, "{")
}
