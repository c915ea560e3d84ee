package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// StyleKind identifies the block-level role of a line.
type StyleKind int

// Block-level style kinds. The zero value is not a valid style.
const (
	_ StyleKind = iota
	Header
	Quote
	List
	HorizontalLine
	Comment
)

// String returns the kind name, used in test failures and debug output.
func (k StyleKind) String() string {
	switch k {
	case Header:
		return "Header"
	case Quote:
		return "Quote"
	case List:
		return "List"
	case HorizontalLine:
		return "HorizontalLine"
	case Comment:
		return "Comment"
	}
	return "StyleKind(" + strconv.Itoa(int(k)) + ")"
}

// ListKind distinguishes unordered from ordered lists.
type ListKind int

// List kinds.
const (
	Unordered ListKind = iota
	Ordered
)

// OpeningTag returns the container tag that opens a list group of this kind.
func (k ListKind) OpeningTag() string {
	if k == Ordered {
		return "<ol>"
	}
	return "<ul>"
}

// ClosingTag returns the container tag that closes a list group of this kind.
func (k ListKind) ClosingTag() string {
	if k == Ordered {
		return "</ol>"
	}
	return "</ul>"
}

// Style is the block-level style of a single line.
// Depth is only meaningful for Header, List only for List.
type Style struct {
	Kind  StyleKind
	Depth int
	List  ListKind
}

// Styles without payload.
var (
	QuoteStyle   = Style{Kind: Quote}
	RuleStyle    = Style{Kind: HorizontalLine}
	CommentStyle = Style{Kind: Comment}
)

// HeaderStyle returns a header style of the given depth.
func HeaderStyle(depth int) Style {
	return Style{Kind: Header, Depth: depth}
}

// ListStyle returns a list item style of the given kind.
func ListStyle(kind ListKind) Style {
	return Style{Kind: List, List: kind}
}

// Precompiled token patterns.
var (
	headerToken      = regexp.MustCompile(`^#+$`)
	orderedListToken = regexp.MustCompile(`^\p{Nd}+\.$`)
)

// escapedQuoteToken is the quote marker after HTML escaping.
const escapedQuoteToken = "&gt;"

// Classify splits a line into its block style and the content to format.
// The style token is everything before the first space. When no style
// matches, ok is false and content is the whole trimmed line.
func Classify(line string) (style Style, ok bool, content string) {
	token, rest := line, ""
	if idx := strings.IndexByte(line, ' '); idx != -1 {
		token, rest = line[:idx], line[idx:]
	}

	switch {
	case headerToken.MatchString(token):
		style = HeaderStyle(len(token))
	case token == "-":
		style = ListStyle(Unordered)
	case orderedListToken.MatchString(token):
		style = ListStyle(Ordered)
	case token == ">" || token == escapedQuoteToken:
		style = QuoteStyle
	case token == "---":
		style = RuleStyle
	case token == "~~~":
		style = CommentStyle
	default:
		return Style{}, false, strings.TrimSpace(line)
	}

	return style, true, strings.TrimSpace(rest)
}

// Wrap applies the block wrapper of s to formatted content.
// It returns false when the style produces no output line (comments).
func (s Style) Wrap(content string) (string, bool) {
	switch s.Kind {
	case Header:
		n := strconv.Itoa(s.Depth)
		return "<h" + n + "> " + content + " </h" + n + ">", true
	case List:
		return "  <li> " + content + " </li>", true
	case Quote:
		return "<blockquote> " + content + " </blockquote>", true
	case HorizontalLine:
		return "<hr />", true
	case Comment:
		return "", false
	}
	return "", false
}

// Paragraph wraps unstyled content.
func Paragraph(content string) string {
	return "<p> " + content + " </p>"
}
