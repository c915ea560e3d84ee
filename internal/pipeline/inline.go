package pipeline

import "strings"

// Inline marker runes.
const (
	escapeMarker    = '\\'
	italicMarker    = '*'
	boldMarker      = '^'
	underlineMarker = '_'
	codeMarker      = '`'
	linkOpenMarker  = '['
	linkCloseMarker = ']'
	linkSeparator   = '|'
)

// toggle pairs each marker with the tags it alternates between.
type toggle struct {
	open, close string
}

var toggles = map[rune]toggle{
	italicMarker:    {"<i>", "</i>"},
	boldMarker:      {"<b>", "</b>"},
	underlineMarker: {"<u>", "</u>"},
	codeMarker:      {"<code>", "</code>"},
}

// linkBuffer accumulates the text of an open [...] span.
type linkBuffer struct {
	text strings.Builder
	sep  int // byte offset of the last unescaped separator, -1 if none
}

// inlineState is the formatter state for one line. Toggles never nest:
// each marker flips its own flag regardless of the others.
type inlineState struct {
	active  map[rune]bool
	escaped bool
	link    *linkBuffer
	out     strings.Builder
}

func newInlineState() *inlineState {
	return &inlineState{active: make(map[rune]bool, len(toggles))}
}

// target returns the builder currently receiving output.
func (s *inlineState) target() *strings.Builder {
	if s.link != nil {
		return &s.link.text
	}
	return &s.out
}

// step consumes one rune.
func (s *inlineState) step(r rune) {
	escaped := s.escaped
	s.escaped = false

	if escaped {
		s.target().WriteRune(r)
		return
	}

	if t, ok := toggles[r]; ok {
		if s.active[r] {
			s.target().WriteString(t.close)
		} else {
			s.target().WriteString(t.open)
		}
		s.active[r] = !s.active[r]
		return
	}

	switch {
	case r == escapeMarker:
		s.escaped = true
	case r == linkOpenMarker && s.link == nil:
		s.link = &linkBuffer{sep: -1}
	case r == linkCloseMarker && s.link != nil:
		s.out.WriteString(s.link.anchor())
		s.link = nil
	case r == linkSeparator && s.link != nil:
		s.link.sep = s.link.text.Len()
		s.link.text.WriteRune(r)
	default:
		s.target().WriteRune(r)
	}
}

// anchor renders the buffered link. Text and destination are inserted
// verbatim; the source was escaped before line splitting.
func (b *linkBuffer) anchor() string {
	text, href := b.text.String(), ""
	if b.sep >= 0 {
		href = strings.TrimSpace(text[b.sep+1:])
		text = strings.TrimSpace(text[:b.sep])
	}
	return `<a href="` + href + `">` + text + `</a>`
}

// String returns the formatted output so far. An open link is not included.
func (s *inlineState) String() string {
	return s.out.String()
}

// FormatInline expands toggle markers, links and backslash escapes in a
// single line of content. Markers left open at the end of the line are
// dropped without closing tags, and an unterminated link is discarded.
func FormatInline(content string) string {
	s := newInlineState()
	for _, r := range content {
		s.step(r)
	}
	return s.String()
}
