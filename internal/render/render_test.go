// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/taibuivan/node/internal/render"
)

func mustRender(t *testing.T, markdown string) string {
	t.Helper()

	out, err := render.New().Render(markdown)
	require.NoError(t, err)
	return out
}

// elements returns every element with the given tag in the fragment.
func elements(t *testing.T, fragment, tag string) []*html.Node {
	t.Helper()

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	require.NoError(t, err)

	var found []*html.Node
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	for _, node := range nodes {
		visit(node)
	}
	return found
}

func classOf(node *html.Node) string {
	for _, attribute := range node.Attr {
		if attribute.Key == "class" {
			return attribute.Val
		}
	}
	return ""
}

func assertClasses(t *testing.T, node *html.Node, classes ...string) {
	t.Helper()

	tokens := strings.Fields(classOf(node))
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			assert.Contains(t, tokens, token, "<%s> misses class %q", node.Data, token)
		}
	}
}

/*
TestRender_Empty verifies that empty input yields empty output.
*/
func TestRender_Empty(t *testing.T) {
	assert.Empty(t, mustRender(t, ""))
	assert.Empty(t, mustRender(t, "  \n\t "))
}

/*
TestRender_Sanitizes verifies no script-executing construct survives.
*/
func TestRender_Sanitizes(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		banned   []string
	}{
		{"inline_script", "Hello <script>alert(1)</script> world", []string{"<script", "alert(1)"}},
		{"block_script", "<script>\nalert(1)\n</script>\n\nHello", []string{"<script", "alert(1)"}},
		{"event_handler", `<img src="https://img.node.dev/a.png" onerror="alert(1)">`, []string{"onerror", "alert(1)"}},
		{"javascript_link", "[click](javascript:alert(1))", []string{"javascript:"}},
		{"style_injection", `<p style="position:fixed" class="evil">Hi</p>`, []string{"position:fixed", "evil"}},
		{"iframe", `<iframe src="https://evil.example"></iframe>`, []string{"<iframe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRender(t, tt.markdown)
			for _, banned := range tt.banned {
				assert.NotContains(t, out, banned)
			}
		})
	}
}

/*
TestRender_DropCap verifies the first letter of the first text paragraph is wrapped alone.
*/
func TestRender_DropCap(t *testing.T) {
	out := mustRender(t, "# Title\n\nHello world")

	assert.Contains(t, out, `<span class="`+render.ClassDropCap+`">H</span>ello world`)

	spans := elements(t, out, "span")
	require.Len(t, spans, 1)
	assert.Equal(t, "H", spans[0].FirstChild.Data)
	require.NotNil(t, spans[0].NextSibling)
	assert.Equal(t, "ello world", spans[0].NextSibling.Data)
}

/*
TestRender_DropCapSkipsImageParagraph verifies image-only paragraphs are skipped.
*/
func TestRender_DropCapSkipsImageParagraph(t *testing.T) {
	out := mustRender(t, "![cat](https://img.node.dev/cat.png)\n\nWorld peace")

	paragraphs := elements(t, out, "p")
	require.Len(t, paragraphs, 2)

	assert.Empty(t, elements(t, renderNode(t, paragraphs[0]), "span"))
	assert.NotEmpty(t, elements(t, renderNode(t, paragraphs[0]), "img"))
	assert.Contains(t, out, `<span class="`+render.ClassDropCap+`">W</span>orld peace`)
}

/*
TestRender_DropCapUnicode verifies the first letter or digit is found past punctuation,
and that decomposed input is normalized first.
*/
func TestRender_DropCapUnicode(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"leading_punctuation", "“¡Ñandú!” dijo", `“¡<span class="` + render.ClassDropCap + `">Ñ</span>andú!” dijo`},
		{"decomposed", "N\u0303andu", `<span class="` + render.ClassDropCap + `">Ñ</span>andu`},
		{"digit", "...2026 was fine", `...<span class="` + render.ClassDropCap + `">2</span>026 was fine`},
		{"hangul", "안녕하세요", `<span class="` + render.ClassDropCap + `">안</span>녕하세요`},
		{"inside_emphasis", "*Bold* start", `<em><span class="` + render.ClassDropCap + `">B</span>old</em> start`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, mustRender(t, tt.markdown), tt.want)
		})
	}
}

/*
TestRender_DropCapNoAlphanumeric verifies a punctuation-only first paragraph stops the search.
*/
func TestRender_DropCapNoAlphanumeric(t *testing.T) {
	out := mustRender(t, "!!!\n\nHello")
	assert.Empty(t, elements(t, out, "span"))
}

/*
TestRender_NoTextStillStyles verifies pure-image content keeps the structural classes.
*/
func TestRender_NoTextStillStyles(t *testing.T) {
	out := mustRender(t, "## Gallery\n\n![a](https://img.node.dev/a.png)")

	assert.Empty(t, elements(t, out, "span"))
	headings := elements(t, out, "h2")
	require.Len(t, headings, 1)
	assertClasses(t, headings[0], render.ClassHeading2)
}

/*
TestRender_HeadingTiers verifies the three heading treatments.
*/
func TestRender_HeadingTiers(t *testing.T) {
	out := mustRender(t, "# One\n\n## Two\n\n### Three\n\n#### Four\n\n###### Six")

	assertClasses(t, elements(t, out, "h1")[0], render.ClassHeading1)
	assertClasses(t, elements(t, out, "h2")[0], render.ClassHeading2)
	assertClasses(t, elements(t, out, "h3")[0], render.ClassHeadingSmall)
	assertClasses(t, elements(t, out, "h4")[0], render.ClassHeadingSmall)
	assertClasses(t, elements(t, out, "h6")[0], render.ClassHeadingSmall)
}

/*
TestRender_CodeBlocks verifies block code is styled and inline code is not.
*/
func TestRender_CodeBlocks(t *testing.T) {
	out := mustRender(t, "Use `go test`.\n\n```go\nfmt.Println(1)\n```")

	pres := elements(t, out, "pre")
	require.Len(t, pres, 1)
	assertClasses(t, pres[0], render.ClassCodeBlock)

	codes := elements(t, out, "code")
	require.Len(t, codes, 2)
	assert.NotContains(t, classOf(codes[0]), "font-mono")
	assertClasses(t, codes[1], render.ClassCode)
}

/*
TestRender_Lists verifies list markers and spacing.
*/
func TestRender_Lists(t *testing.T) {
	out := mustRender(t, "- apple\n- pear\n\n1. one\n2. two")

	unordered := elements(t, out, "ul")
	require.Len(t, unordered, 1)
	assertClasses(t, unordered[0], render.ClassList, render.ClassListDisc)

	ordered := elements(t, out, "ol")
	require.Len(t, ordered, 1)
	assertClasses(t, ordered[0], render.ClassList, render.ClassListDecimal)

	items := elements(t, out, "li")
	require.Len(t, items, 4)
	for _, item := range items {
		assertClasses(t, item, render.ClassListItem)
	}
}

/*
TestRender_Tables verifies table, header cell and data cell classes.
*/
func TestRender_Tables(t *testing.T) {
	out := mustRender(t, "| name | role |\n| --- | --- |\n| kim | admin |")

	tables := elements(t, out, "table")
	require.Len(t, tables, 1)
	assertClasses(t, tables[0], render.ClassTable)

	for _, header := range elements(t, out, "th") {
		assertClasses(t, header, render.ClassCell, render.ClassHeaderCell)
	}
	cells := elements(t, out, "td")
	require.Len(t, cells, 2)
	for _, cell := range cells {
		assertClasses(t, cell, render.ClassCell)
		assert.NotContains(t, classOf(cell), "bg-gray-100")
	}
}

/*
TestRender_HardWraps verifies single newlines become line breaks.
*/
func TestRender_HardWraps(t *testing.T) {
	out := mustRender(t, "line one\nline two")
	assert.NotEmpty(t, elements(t, out, "br"))
}

/*
TestRender_Reprocessing pins the current behavior when the pipeline is fed
its own output: the drop-cap span survives sanitization without its class
and receives a nested drop-cap, so the result differs from the input.
*/
func TestRender_Reprocessing(t *testing.T) {
	first := mustRender(t, "# Title\n\nHello world")
	second := mustRender(t, first)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, strings.Count(second, "<span"))
	assert.Contains(t, second, "ello world")

	// Heading classes are merged, not duplicated
	headings := elements(t, second, "h1")
	require.Len(t, headings, 1)
	assert.Equal(t, render.ClassHeading1, classOf(headings[0]))
}

/*
TestExcerpt verifies plain-text previews for feed cards.
*/
func TestExcerpt(t *testing.T) {
	renderer := render.New()

	assert.Equal(t, "Title Hello world", renderer.Excerpt("# Title\n\nHello **world**", 0))
	assert.Equal(t, "Hello…", renderer.Excerpt("Hello world", 5))
	assert.Empty(t, renderer.Excerpt("<script>alert(1)</script>", 10))
}

func renderNode(t *testing.T, node *html.Node) string {
	t.Helper()

	var builder strings.Builder
	require.NoError(t, html.Render(&builder, node))
	return builder.String()
}
