package markup

// Notes:
// - Tests Converter.Convert with mocked pipeline components to isolate unit logic
// - Internal test options (withPreprocessor, etc.) enable dependency injection
// - PDF output is exercised through mockPDFConverter; no browser is started
// - NewConverter tests cover asset resolution by name, path, and inline CSS

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-markup/internal/assets"
	"github.com/alnah/go-markup/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPreprocessor struct {
	called bool
	input  string
}

func (m *mockPreprocessor) Preprocess(ctx context.Context, content string) (string, error) {
	m.called = true
	m.input = content
	return content, nil
}

type panicPreprocessor struct{}

func (p *panicPreprocessor) Preprocess(ctx context.Context, content string) (string, error) {
	panic("boom")
}

type mockCSSInjector struct {
	called    bool
	inputHTML string
	inputCSS  string
}

func (m *mockCSSInjector) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	m.called = true
	m.inputHTML = htmlContent
	m.inputCSS = cssContent
	return htmlContent
}

type mockPDFConverter struct {
	called     bool
	closed     bool
	inputHTML  string
	inputPage  *PageSettings
	output     []byte
	err        error
	closeError error
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	m.called = true
	m.inputHTML = htmlContent
	m.inputPage = page
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return m.closeError
}

// ---------------------------------------------------------------------------
// Internal Test Options
// ---------------------------------------------------------------------------

func withPreprocessor(p pipeline.Preprocessor) Option {
	return func(c *Converter) {
		c.preprocessor = p
	}
}

func withCSSInjector(i pipeline.CSSInjector) Option {
	return func(c *Converter) {
		c.cssInjector = i
	}
}

func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

// newTestConverter creates a converter that never starts a browser.
func newTestConverter(t *testing.T, opts ...Option) (*Converter, *mockPDFConverter) {
	t.Helper()

	pdf := &mockPDFConverter{output: []byte("%PDF-1.4 test")}
	conv, err := NewConverter(append([]Option{withPDFConverter(pdf)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv, pdf
}

// ---------------------------------------------------------------------------
// TestNewConverter - Asset Resolution
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	noMarkers := filepath.Join(dir, "broken.html")
	if err := os.WriteFile(noMarkers, []byte("<html>{{BODY}}</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"embedded style", []Option{WithStyle("plain")}, nil},
		{"inline CSS", []Option{WithStyle("body { color: red; }")}, nil},
		{"embedded template", []Option{WithTemplate("minimal")}, nil},
		{"unknown style", []Option{WithStyle("nope")}, ErrStyleNotFound},
		{"unknown template", []Option{WithTemplate("nope")}, ErrTemplateNotFound},
		{"invalid style name", []Option{WithStyle("bad name")}, assets.ErrInvalidAssetName},
		{"missing style file", []Option{WithStyle(filepath.Join(dir, "missing.css"))}, ErrAssetFile},
		{"missing template file", []Option{WithTemplate(filepath.Join(dir, "missing.html"))}, ErrAssetFile},
		{"template without title marker", []Option{WithTemplate(noMarkers)}, ErrInvalidTemplate},
		{"invalid asset path", []Option{WithAssetPath(filepath.Join(dir, "nowhere"))}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(append([]Option{withPDFConverter(&mockPDFConverter{})}, tt.opts...)...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() unexpected error: %v", err)
			}
			_ = conv.Close()
		})
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, WithTimeout(time.Minute))
	if conv.cfg.timeout != time.Minute {
		t.Errorf("timeout = %v, want %v", conv.cfg.timeout, time.Minute)
	}

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestWithAssetPath_LoadsFromFilesystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for path, content := range map[string]string{
		"styles/custom.css":     "p { color: teal; }",
		"templates/custom.html": "<html><head><title>{{TITLE}}</title></head><body><article>{{BODY}}</article></body></html>",
	} {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	conv, _ := newTestConverter(t, WithAssetPath(dir), WithStyle("custom"), WithTemplate("custom"))

	result, err := conv.Convert(context.Background(), Input{Source: "hi"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	got := string(result.HTML)
	if !strings.Contains(got, "<article><p> hi </p></article>") {
		t.Errorf("custom template not used: %s", got)
	}
	if !strings.Contains(got, "<style>p { color: teal; }</style>") {
		t.Errorf("custom style not injected: %s", got)
	}

	// Names missing from the custom directory fall back to embedded assets.
	if _, err := NewConverter(withPDFConverter(&mockPDFConverter{}), WithAssetPath(dir), WithStyle("plain")); err != nil {
		t.Errorf("fallback to embedded style failed: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Success - Pipeline Data Flow
// ---------------------------------------------------------------------------

func TestConvert_Success(t *testing.T) {
	t.Parallel()

	preprocessor := &mockPreprocessor{}
	cssInj := &mockCSSInjector{}
	conv, pdf := newTestConverter(t,
		withPreprocessor(preprocessor),
		withCSSInjector(cssInj),
		WithStyle("p { margin: 0; }"),
		WithTemplate("minimal"),
	)

	page := &PageSettings{Size: "a4", Orientation: "landscape", Margin: 1}
	result, err := conv.Convert(context.Background(), Input{
		Source: "# Hello\nworld",
		CSS:    "body {}",
		PDF:    true,
		Page:   page,
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if preprocessor.input != "# Hello\nworld" {
		t.Errorf("preprocessor input = %q", preprocessor.input)
	}
	if !strings.Contains(cssInj.inputHTML, "<h1> Hello </h1>\n<p> world </p>") {
		t.Errorf("CSS injector received %q", cssInj.inputHTML)
	}
	if cssInj.inputCSS != "p { margin: 0; }\nbody {}" {
		t.Errorf("CSS = %q, want converter style then input CSS", cssInj.inputCSS)
	}
	if pdf.inputHTML != string(result.HTML) {
		t.Errorf("PDF converter received %q, want final HTML", pdf.inputHTML)
	}
	if pdf.inputPage != page {
		t.Error("page settings not passed to PDF converter")
	}
	if string(result.PDF) != "%PDF-1.4 test" {
		t.Errorf("PDF = %q", result.PDF)
	}
	if result.Title != "Hello" {
		t.Errorf("Title = %q, want %q", result.Title, "Hello")
	}
	if result.Lines != 2 {
		t.Errorf("Lines = %d, want 2", result.Lines)
	}
}

func TestConvert_HTMLOnlySkipsPDF(t *testing.T) {
	t.Parallel()

	conv, pdf := newTestConverter(t)

	// Page settings are only checked when PDF output is requested.
	result, err := conv.Convert(context.Background(), Input{
		Source: "text",
		Page:   &PageSettings{Size: "tabloid"},
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if pdf.called {
		t.Error("PDF converter called for HTML-only conversion")
	}
	if result.PDF != nil {
		t.Errorf("PDF = %q, want nil", result.PDF)
	}
}

func TestConvert_EmptySource(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	result, err := conv.Convert(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !strings.Contains(string(result.HTML), "<main class=\"markup\">\n\n</main>") {
		t.Errorf("empty source should give an empty body: %s", result.HTML)
	}
	if result.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", result.Title, DefaultTitle)
	}
}

func TestConvert_UnicodeNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"text kept as written by default", nil, "<p> cafe\u0301 </p>"},
		{"composed when enabled", []Option{WithUnicodeNormalization()}, "<p> caf\u00e9 </p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, _ := newTestConverter(t, tt.opts...)
			result, err := conv.Convert(context.Background(), Input{Source: "cafe\u0301"})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if !strings.Contains(string(result.HTML), tt.want) {
				t.Errorf("HTML missing %q: %s", tt.want, result.HTML)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Title - Title Precedence
// ---------------------------------------------------------------------------

func TestConvert_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		defaultTitle string
		source       string
		inputTitle   string
		want         string
	}{
		{"default title", "", "text", "", DefaultTitle},
		{"configured default", "Notes", "text", "", "Notes"},
		{"discovered beats default", "Notes", "# Found", "", "Found"},
		{"explicit beats discovered", "Notes", "# Found", "Given", "Given"},
		{"explicit is escaped", "", "", "A & B", "A &amp; B"},
		{"default is escaped", "<x>", "", "", "&lt;x&gt;"},
		{"discovered keeps formatting", "", "# ^Big^ & bold", "", "<b>Big</b> &amp; bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var opts []Option
			if tt.defaultTitle != "" {
				opts = append(opts, WithDefaultTitle(tt.defaultTitle))
			}
			conv, _ := newTestConverter(t, opts...)

			result, err := conv.Convert(context.Background(), Input{Source: tt.source, Title: tt.inputTitle})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if result.Title != tt.want {
				t.Errorf("Title = %q, want %q", result.Title, tt.want)
			}
			if !strings.Contains(string(result.HTML), "<title>"+tt.want+"</title>") {
				t.Errorf("page title not rendered: %s", result.HTML)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert Errors
// ---------------------------------------------------------------------------

func TestConvert_InvalidPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"bad size", &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5}, ErrInvalidPageSize},
		{"bad orientation", &PageSettings{Size: "a4", Orientation: "diagonal", Margin: 0.5}, ErrInvalidOrientation},
		{"bad margin", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 9}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, pdf := newTestConverter(t)
			_, err := conv.Convert(context.Background(), Input{Source: "x", PDF: true, Page: tt.page})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if pdf.called {
				t.Error("PDF converter called despite invalid page settings")
			}
		})
	}
}

func TestConvert_PDFConverterError(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{err: ErrBrowserConnect}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	defer conv.Close()

	_, err = conv.Convert(context.Background(), Input{Source: "x", PDF: true})
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Convert() error = %v, want %v", err, ErrBrowserConnect)
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, withPreprocessor(&panicPreprocessor{}))

	_, err := conv.Convert(context.Background(), Input{Source: "# Test"})
	if err == nil {
		t.Fatal("expected error from panic recovery, got nil")
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("expected 'internal error' in message, got %q", err.Error())
	}
}

func TestConvert_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv, pdf := newTestConverter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Source: "# Test", PDF: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
	if pdf.called {
		t.Error("PDF converter called after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Close
// ---------------------------------------------------------------------------

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{closeError: errors.New("close failed")}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	if err := conv.Close(); err == nil {
		t.Error("Close() should propagate PDF converter error")
	}
	if !pdf.closed {
		t.Error("PDF converter not closed")
	}

	if err := (&Converter{}).Close(); err != nil {
		t.Errorf("Close() on converter without PDF backend = %v", err)
	}
}
