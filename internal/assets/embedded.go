package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load reads styles/{name}.css or templates/{name}.html from the binary.
func (e *EmbeddedLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := embedded.ReadFile(path.Join(kind.Dir, name+kind.Ext))
	if err != nil {
		return "", kind.missing(name)
	}
	return string(content), nil
}

// Names lists the embedded assets of kind, sorted.
func Names(kind Kind) []string {
	entries, err := fs.ReadDir(embedded, kind.Dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), kind.Ext); ok && !entry.IsDir() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// StyleNames lists the embedded styles, sorted.
func StyleNames() []string { return Names(Style) }

// TemplateNames lists the embedded page templates, sorted.
func TemplateNames() []string { return Names(Template) }

var _ AssetLoader = (*EmbeddedLoader)(nil)
