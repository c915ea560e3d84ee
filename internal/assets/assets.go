// Package assets provides the page templates and CSS styles used to render
// compiled markup. Assets can be loaded from embedded files or custom
// filesystem paths.
package assets

// Names of the built-in assets.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "default"
)

var builtin = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS style by bare name.
func LoadStyle(name string) (string, error) {
	return builtin.Load(Style, name)
}

// LoadTemplate loads an embedded page template by bare name.
func LoadTemplate(name string) (string, error) {
	return builtin.Load(Template, name)
}

// MustLoadTemplate loads an embedded template and panics if it is missing.
// Only for names known at compile time.
func MustLoadTemplate(name string) string {
	content, err := LoadTemplate(name)
	if err != nil {
		panic(err)
	}
	return content
}
