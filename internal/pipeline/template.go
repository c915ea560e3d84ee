package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Template markers substituted by Render.
const (
	BodyMarker  = "{{BODY}}"
	TitleMarker = "{{TITLE}}"
)

// ErrInvalidTemplate indicates a page template without exactly one of each marker.
var ErrInvalidTemplate = errors.New("invalid page template")

// PageTemplate is a static HTML page with a body and a title slot.
type PageTemplate struct {
	text string
}

// ParseTemplate validates that text contains each marker exactly once.
func ParseTemplate(text string) (*PageTemplate, error) {
	for _, marker := range []string{BodyMarker, TitleMarker} {
		if n := strings.Count(text, marker); n != 1 {
			return nil, fmt.Errorf("%w: %s occurs %d times (want 1)", ErrInvalidTemplate, marker, n)
		}
	}
	return &PageTemplate{text: text}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
// Only for templates embedded at compile time.
func MustParseTemplate(text string) *PageTemplate {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Render substitutes body and title in one pass; markers that appear inside
// the substituted values are left alone.
func (t *PageTemplate) Render(body, title string) string {
	return strings.NewReplacer(BodyMarker, body, TitleMarker, title).Replace(t.text)
}
