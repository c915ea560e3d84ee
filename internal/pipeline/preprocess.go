package pipeline

import (
	"context"
	"html"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Preprocessor defines the contract for source preprocessing.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) (string, error)
}

// SourcePreprocessor prepares raw markup for assembly.
type SourcePreprocessor struct {
	// NFC composes the source to Unicode normalisation form C before
	// escaping. Off by default: escaping is otherwise the only change
	// made to the text.
	NFC bool
}

// Preprocess normalises line endings, then escapes HTML special characters.
// Escaping happens exactly once, before any line is classified, so the
// quote marker reaches the classifier as "&gt;".
func (p *SourcePreprocessor) Preprocess(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content = normalizeLineEndings(content)
	if p.NFC {
		content = norm.NFC.String(content)
	}
	return html.EscapeString(content), nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
