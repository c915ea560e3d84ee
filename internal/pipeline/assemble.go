package pipeline

import "strings"

// Document is the assembled body of a compiled source, before it is placed
// in a page template.
type Document struct {
	Title    string   // inline-formatted content of the first level-1 header
	HasTitle bool     // false when the source has no level-1 header
	Body     []string // output lines in emission order
	Lines    int      // source lines read
}

// BodyHTML joins the body lines.
func (d *Document) BodyHTML() string {
	return strings.Join(d.Body, "\n")
}

// TitleOr returns the discovered title, or fallback when there is none.
func (d *Document) TitleOr(fallback string) string {
	if d.HasTitle {
		return d.Title
	}
	return fallback
}

// assembler carries the cross-line state of one Assemble call.
type assembler struct {
	doc      *Document
	list     ListKind
	listOpen bool
}

// Assemble compiles escaped, newline-normalised source text into a document
// body. It never fails: unrecognised lines become paragraphs.
func Assemble(escaped string) *Document {
	a := &assembler{doc: &Document{}}
	for _, line := range strings.Split(escaped, "\n") {
		a.line(line)
	}
	a.closeList()
	return a.doc
}

func (a *assembler) line(raw string) {
	a.doc.Lines++

	style, ok, content := Classify(raw)
	formatted := FormatInline(content)

	// Blank lines leave list and title state untouched.
	if !ok && formatted == "" {
		return
	}

	if !ok {
		a.closeList()
		a.emit(Paragraph(formatted))
		return
	}

	if style.Kind == List {
		a.openList(style.List)
	} else {
		a.closeList()
	}

	if style.Kind == Header && style.Depth == 1 && !a.doc.HasTitle {
		a.doc.Title = formatted
		a.doc.HasTitle = true
	}

	if out, ok := style.Wrap(formatted); ok {
		a.emit(out)
	}
}

// openList starts a list group of kind unless one is already open,
// closing a group of the other kind first.
func (a *assembler) openList(kind ListKind) {
	if a.listOpen && a.list == kind {
		return
	}
	a.closeList()
	a.emit(kind.OpeningTag())
	a.list = kind
	a.listOpen = true
}

func (a *assembler) closeList() {
	if !a.listOpen {
		return
	}
	a.emit(a.list.ClosingTag())
	a.listOpen = false
}

func (a *assembler) emit(line string) {
	a.doc.Body = append(a.doc.Body, line)
}
