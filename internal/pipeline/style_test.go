package pipeline

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		line        string
		wantStyle   Style
		wantOK      bool
		wantContent string
	}{
		// Headers
		{"h1", "# Hello", HeaderStyle(1), true, "Hello"},
		{"h2", "## Hello", HeaderStyle(2), true, "Hello"},
		{"h3", "### Hello", HeaderStyle(3), true, "Hello"},
		{"h7 is not capped", "####### Deep", HeaderStyle(7), true, "Deep"},
		{"hash glued to text", "#Hello", Style{}, false, "#Hello"},
		{"second hash kept in content", "# # Hello", HeaderStyle(1), true, "# Hello"},
		{"mixed hash token", "#a# Hello", Style{}, false, "#a# Hello"},
		{"content trimmed", "#    Hello   ", HeaderStyle(1), true, "Hello"},

		// Lists
		{"unordered", "- item", ListStyle(Unordered), true, "item"},
		{"ordered", "1. item", ListStyle(Ordered), true, "item"},
		{"ordered multi digit", "42. item", ListStyle(Ordered), true, "item"},
		{"ordered arabic-indic digits", "\u0661\u0662. item", ListStyle(Ordered), true, "item"},
		{"ordered fullwidth digit", "\uff13. item", ListStyle(Ordered), true, "item"},
		{"superscript is not a decimal digit", "\u00b2. item", Style{}, false, "\u00b2. item"},
		{"ordered without dot", "1 item", Style{}, false, "1 item"},
		{"ordered with paren", "1) item", Style{}, false, "1) item"},
		{"dot only", ". item", Style{}, false, ". item"},
		{"dash glued", "-item", Style{}, false, "-item"},

		// Quote
		{"quote", "> Hello", QuoteStyle, true, "Hello"},
		{"escaped quote", "&gt; Hello", QuoteStyle, true, "Hello"},

		// Horizontal line
		{"rule", "---", RuleStyle, true, ""},
		{"rule with text", "--- Hello", RuleStyle, true, "Hello"},
		{"four dashes", "----", Style{}, false, "----"},

		// Comment
		{"comment", "~~~ Hello", CommentStyle, true, "Hello"},
		{"comment glued", "~~~Hello", Style{}, false, "~~~Hello"},

		// No token
		{"plain", "Hello", Style{}, false, "Hello"},
		{"escaped ampersand", "&amp; Hello", Style{}, false, "&amp; Hello"},
		{"leading space", " # Hello", Style{}, false, "# Hello"},
		{"empty", "", Style{}, false, ""},
		{"whitespace only", "   ", Style{}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			style, ok, content := Classify(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if style != tt.wantStyle {
				t.Errorf("Classify(%q) style = %+v, want %+v", tt.line, style, tt.wantStyle)
			}
			if content != tt.wantContent {
				t.Errorf("Classify(%q) content = %q, want %q", tt.line, content, tt.wantContent)
			}
		})
	}
}

func TestClassify_HeaderDepthMatchesTokenLength(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 12; n++ {
		token := ""
		for i := 0; i < n; i++ {
			token += "#"
		}
		style, ok, content := Classify(token + " title  ")
		if !ok || style.Kind != Header || style.Depth != n {
			t.Errorf("Classify(%q) = %+v, %v; want Header(%d)", token, style, ok, n)
		}
		if content != "title" {
			t.Errorf("Classify(%q) content = %q, want %q", token, content, "title")
		}
	}
}

func TestStyle_Wrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		style   Style
		content string
		want    string
		wantOK  bool
	}{
		{"h1", HeaderStyle(1), "Hello", "<h1> Hello </h1>", true},
		{"h4", HeaderStyle(4), "Hello", "<h4> Hello </h4>", true},
		{"ordered item", ListStyle(Ordered), "Hello", "  <li> Hello </li>", true},
		{"unordered item", ListStyle(Unordered), "Hello", "  <li> Hello </li>", true},
		{"quote", QuoteStyle, "Hello", "<blockquote> Hello </blockquote>", true},
		{"rule ignores content", RuleStyle, "Hello", "<hr />", true},
		{"comment suppressed", CommentStyle, "Hello", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.style.Wrap(tt.content)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Wrap(%q) = (%q, %v), want (%q, %v)", tt.content, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestListKind_Tags(t *testing.T) {
	t.Parallel()

	if got := Unordered.OpeningTag() + Unordered.ClosingTag(); got != "<ul></ul>" {
		t.Errorf("Unordered tags = %q", got)
	}
	if got := Ordered.OpeningTag() + Ordered.ClosingTag(); got != "<ol></ol>" {
		t.Errorf("Ordered tags = %q", got)
	}
}

func TestParagraph(t *testing.T) {
	t.Parallel()

	if got := Paragraph("Hello"); got != "<p> Hello </p>" {
		t.Errorf("Paragraph() = %q", got)
	}
}
