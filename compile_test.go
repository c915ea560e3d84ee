package markup_test

// Notes:
// - Compile is tested end to end on the rendered page, parsed with goquery
//   so assertions follow document structure rather than exact whitespace

import (
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"

	markup "github.com/alnah/go-markup"
)

func parsePage(t *testing.T, page string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing compiled page: %v", err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestCompile - End to End
// ---------------------------------------------------------------------------

func TestCompile(t *testing.T) {
	t.Parallel()

	doc := parsePage(t, markup.Compile("# Title\n- item1\n- item2\n\nSome *bold-ish* ^text^."))

	if got := doc.Find("title").Text(); got != "Title" {
		t.Errorf("title = %q, want %q", got, "Title")
	}

	main := doc.Find("main")
	if got := main.Children().Length(); got != 3 {
		t.Fatalf("main has %d children, want 3 (h1, ul, p)", got)
	}
	if got := strings.TrimSpace(main.Find("h1").Text()); got != "Title" {
		t.Errorf("h1 = %q", got)
	}
	if got := main.Find("ul").Length(); got != 1 {
		t.Errorf("ul count = %d, want 1", got)
	}
	items := main.Find("ul > li")
	if items.Length() != 2 {
		t.Fatalf("li count = %d, want 2", items.Length())
	}
	if got := strings.TrimSpace(items.Eq(1).Text()); got != "item2" {
		t.Errorf("second item = %q", got)
	}
	if got := main.Find("p > i").Text(); got != "bold-ish" {
		t.Errorf("italic = %q, want %q", got, "bold-ish")
	}
	if got := main.Find("p > b").Text(); got != "text" {
		t.Errorf("bold = %q, want %q", got, "text")
	}
}

func TestCompile_DefaultTitle(t *testing.T) {
	t.Parallel()

	doc := parsePage(t, markup.Compile("## not a title\nbody"))
	if got := doc.Find("title").Text(); got != markup.DefaultTitle {
		t.Errorf("title = %q, want %q", got, markup.DefaultTitle)
	}
}

func TestCompile_ListGroups(t *testing.T) {
	t.Parallel()

	doc := parsePage(t, markup.Compile("- a\n1. b\n2. c\n\n3. d\n~~~ split\n4. e"))

	lists := doc.Find("main").Children()
	var kinds []string
	lists.Each(func(_ int, s *goquery.Selection) {
		kinds = append(kinds, goquery.NodeName(s)+":"+strings.Repeat("i", s.Children().Length()))
	})

	want := []string{"ul:i", "ol:iii", "ol:i"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("list groups = %v, want %v", kinds, want)
	}
}

func TestCompile_Links(t *testing.T) {
	t.Parallel()

	doc := parsePage(t, markup.Compile(`See [the docs | https://go.dev/doc] and \[not a link].`))

	links := doc.Find("a")
	if links.Length() != 1 {
		t.Fatalf("link count = %d, want 1", links.Length())
	}
	if href, _ := links.Attr("href"); href != "https://go.dev/doc" {
		t.Errorf("href = %q", href)
	}
	if got := links.Text(); got != "the docs" {
		t.Errorf("link text = %q", got)
	}
	if !strings.Contains(doc.Find("p").Text(), "[not a link]") {
		t.Errorf("escaped bracket not kept literally: %q", doc.Find("p").Text())
	}
}

func TestCompile_EscapesHTML(t *testing.T) {
	t.Parallel()

	doc := parsePage(t, markup.Compile("<script>alert(1)</script>\n# <b>x</b>"))

	if doc.Find("script").Length() != 0 {
		t.Error("raw script tag reached the page")
	}
	if got := strings.TrimSpace(doc.Find("p").Text()); got != "<script>alert(1)</script>" {
		t.Errorf("paragraph text = %q", got)
	}
	if got := doc.Find("title").Text(); got != "<b>x</b>" {
		t.Errorf("title text = %q", got)
	}
}

func TestCompile_KeepsTextAsWritten(t *testing.T) {
	t.Parallel()

	src := "cafe\u0301 A\u030a"
	page := markup.Compile(src)

	if !strings.Contains(page, "<p> "+src+" </p>") {
		t.Errorf("decomposed text was rewritten: %q", page)
	}
	if strings.Contains(page, "caf\u00e9") {
		t.Error("text was composed to NFC")
	}
	if !strings.Contains(markup.Compile("<\u0338"), "&lt;\u0338") {
		t.Error("bracket before a combining mark was not escaped")
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	source := "# A\n- x\n> q\n---\ntext"
	want := markup.Compile(source)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := markup.Compile(source); got != want {
				t.Error("concurrent Compile produced a different page")
			}
		}()
	}
	wg.Wait()
}

func TestCompile_Empty(t *testing.T) {
	t.Parallel()

	doc := parsePage(t, markup.Compile(""))
	if got := strings.TrimSpace(doc.Find("main").Text()); got != "" {
		t.Errorf("main text = %q, want empty", got)
	}
}
