// Package markup compiles a small line-oriented markup language into HTML
// pages, and optionally renders them to PDF using headless Chrome.
//
// # Quick Start
//
// For a single document with the default page template:
//
//	page := markup.Compile("# Hello\n- one\n- two\n\nSome *italic* and ^bold^ text.")
//
// For styling, custom templates, or PDF output, create a converter:
//
//	conv, err := markup.NewConverter(markup.WithStyle("default"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, markup.Input{Source: src})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.html", result.HTML, 0644)
//
// # Language
//
// Each line is compiled on its own. A line starting with a style token
// followed by a space is styled:
//
//	#, ##, ...   header of the given depth (the first # sets the page title)
//	-            unordered list item
//	1.           ordered list item (any digits)
//	>            block quote
//	---          horizontal rule (remaining text ignored)
//	~~~          comment (not emitted)
//
// Other non-empty lines become paragraphs. Consecutive list items of the same
// kind share one list; blank lines do not end a list.
//
// Inline, *italic*, ^bold^, _underline_ and `code` toggle on each marker,
// [text | url] makes a link, and a backslash emits the next character as-is.
// Source text is HTML-escaped before compilation.
//
// # Conversion Pipeline
//
//  1. Preprocessing (line endings, HTML escaping; NFC with WithUnicodeNormalization)
//  2. Line classification, inline formatting, and list grouping
//  3. Page template rendering ({{BODY}} and {{TITLE}} markers)
//  4. CSS injection
//  5. Optional PDF rendering via headless Chrome (go-rod)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool, err := markup.NewConverterPool(4, markup.WithStyle("plain"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// WithAssetPath points at a directory that overrides the embedded assets:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom.html
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package markup
