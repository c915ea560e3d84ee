package markup

import (
	"context"

	"github.com/alnah/go-markup/internal/assets"
	"github.com/alnah/go-markup/internal/pipeline"
)

var defaultPage = pipeline.MustParseTemplate(assets.MustLoadTemplate(assets.DefaultTemplateName))

// Compile turns markup source into a complete HTML page using the default
// template. The title is the first level-1 header, or DefaultTitle.
// It never fails: any text is valid markup.
func Compile(raw string) string {
	escaped, _ := (&pipeline.SourcePreprocessor{}).Preprocess(context.Background(), raw)
	doc := pipeline.Assemble(escaped)
	return defaultPage.Render(doc.BodyHTML(), doc.TitleOr(DefaultTitle))
}
