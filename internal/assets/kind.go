package assets

import "fmt"

// Kind describes one class of asset: the directory it lives in, its file
// extension, and the error reported for an unknown name.
type Kind struct {
	Dir      string
	Ext      string
	NotFound error
}

// Asset kinds.
var (
	Style    = Kind{Dir: "styles", Ext: ".css", NotFound: ErrStyleNotFound}
	Template = Kind{Dir: "templates", Ext: ".html", NotFound: ErrTemplateNotFound}
)

// Kinds lists every asset kind, styles first.
func Kinds() []Kind {
	return []Kind{Style, Template}
}

// String returns the singular noun for error messages and reports.
func (k Kind) String() string {
	switch k.Dir {
	case Style.Dir:
		return "style"
	case Template.Dir:
		return "template"
	}
	return k.Dir
}

func (k Kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.NotFound, name)
}
