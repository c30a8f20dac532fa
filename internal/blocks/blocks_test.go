package blocks

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"brandpress/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

// classSequence parses a fragment and returns the class attribute of
// every element, in document order. This is the order assistive
// technology reads.
func classSequence(t *testing.T, fragment string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse rendered fragment: %v", err)
	}

	var classes []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "class" {
					classes = append(classes, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return classes
}

// indexOfClass returns the position of the first class attribute
// containing the given class name, or -1.
func indexOfClass(classes []string, name string) int {
	for i, c := range classes {
		for _, part := range strings.Fields(c) {
			if part == name {
				return i
			}
		}
	}
	return -1
}

// TestRenderAllFilterAndOrder verifies hidden blocks never render and
// visible blocks render in ascending order.
func TestRenderAllFilterAndOrder(t *testing.T) {
	r := newTestRenderer(t)

	out := string(r.RenderAll([]models.ContentBlock{
		{Type: models.BlockTypeText, Content: "<p>third</p>", Order: 3, Visible: true},
		{Type: models.BlockTypeText, Content: "<p>first</p>", Order: 1, Visible: true},
		{Type: models.BlockTypeText, Content: "<p>never</p>", Order: 2, Visible: false},
	}))

	if strings.Contains(out, "never") {
		t.Errorf("hidden block rendered")
	}

	first := strings.Index(out, "first")
	third := strings.Index(out, "third")
	if first == -1 || third == -1 {
		t.Fatalf("visible blocks missing from output")
	}
	if first > third {
		t.Errorf("blocks rendered out of order: order 3 before order 1")
	}
}

// TestRenderUnknownTypeFallsBack verifies forward compatibility: a tag
// this version does not know renders through the text path.
func TestRenderUnknownTypeFallsBack(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockType("video_embed"),
		Title:   "Watch",
		Content: "<p>coming soon</p>",
		Visible: true,
	})
	if err != nil {
		t.Fatalf("unknown type returned error: %v", err)
	}
	if !strings.Contains(string(frag), "bp-block--text") {
		t.Errorf("unknown type did not use the text layout: %s", frag)
	}
	if !strings.Contains(string(frag), "coming soon") {
		t.Errorf("unknown type dropped its content")
	}
}

// TestRenderContentNotEscaped verifies the pre-sanitized HTML content
// passes through unescaped.
func TestRenderContentNotEscaped(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockTypeText,
		Content: "<p><strong>bold</strong></p>",
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(frag), "<strong>bold</strong>") {
		t.Errorf("HTML content was escaped: %s", frag)
	}
}

// TestTextImageNormalOrder verifies text precedes image in document
// order for the normal layout, with two-column classes.
func TestTextImageNormalOrder(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockTypeTextImage,
		Layout:  models.LayoutNormal,
		Content: "<p>about us</p>",
		Image:   &models.BlockImage{URL: "https://cdn.example.org/a.jpg", Alt: "team"},
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	classes := classSequence(t, string(frag))
	text := indexOfClass(classes, "bp-split__text")
	media := indexOfClass(classes, "bp-split__media")
	if text == -1 || media == -1 {
		t.Fatalf("split regions missing: %v", classes)
	}
	if text > media {
		t.Errorf("normal layout put media before text in document order")
	}
	if idx := indexOfClass(classes, "bp-split--stacked"); idx != -1 {
		t.Errorf("normal layout carries the stacked modifier")
	}
	if idx := indexOfClass(classes, "bp-split--reversed"); idx != -1 {
		t.Errorf("normal layout carries the reversed modifier")
	}
}

// TestTextImageReversedKeepsDocumentOrder verifies the reversed layout
// is a visual-only swap: markup stays text-then-image and only the CSS
// modifier changes.
func TestTextImageReversedKeepsDocumentOrder(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockTypeTextImage,
		Layout:  models.LayoutReversed,
		Content: "<p>story</p>",
		Image:   &models.BlockImage{URL: "https://cdn.example.org/b.jpg"},
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	classes := classSequence(t, string(frag))
	if indexOfClass(classes, "bp-split--reversed") == -1 {
		t.Errorf("reversed layout missing its CSS modifier")
	}
	text := indexOfClass(classes, "bp-split__text")
	media := indexOfClass(classes, "bp-split__media")
	if text > media {
		t.Errorf("reversed layout changed document order; the swap must be visual only")
	}
}

// TestTextImageStackedReversedSwapsDocumentOrder verifies the stacked
// reversal is a real document-order change, not a CSS reorder.
func TestTextImageStackedReversedSwapsDocumentOrder(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockTypeTextImage,
		Layout:  models.LayoutStackedReversed,
		Content: "<p>story</p>",
		Image:   &models.BlockImage{URL: "https://cdn.example.org/c.jpg"},
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	classes := classSequence(t, string(frag))
	text := indexOfClass(classes, "bp-split__text")
	media := indexOfClass(classes, "bp-split__media")
	if media > text {
		t.Errorf("stacked_reversed did not move the image before the text in document order")
	}
	if indexOfClass(classes, "bp-split--stacked") == -1 {
		t.Errorf("stacked_reversed missing the single-column modifier")
	}
	if indexOfClass(classes, "bp-split--reversed") != -1 {
		t.Errorf("stacked_reversed must not use the visual-only reversal modifier")
	}
}

// TestTextImageAlignment verifies the cross-axis alignment modifiers and
// the middle default.
func TestTextImageAlignment(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name      string
		alignment models.VerticalAlignment
		wantClass string
	}{
		{name: "top", alignment: models.AlignTop, wantClass: "bp-split--top"},
		{name: "middle", alignment: models.AlignMiddle, wantClass: "bp-split--middle"},
		{name: "bottom", alignment: models.AlignBottom, wantClass: "bp-split--bottom"},
		{name: "default is middle", alignment: "", wantClass: "bp-split--middle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := r.Render(&models.ContentBlock{
				Type:      models.BlockTypeTextImage,
				Alignment: tt.alignment,
				Content:   "<p>x</p>",
				Visible:   true,
			})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(string(frag), tt.wantClass) {
				t.Errorf("alignment %q missing class %s", tt.alignment, tt.wantClass)
			}
		})
	}
}

// TestQuoteBlock verifies the quote layout emits a blockquote with the
// title as citation.
func TestQuoteBlock(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockTypeQuote,
		Title:   "A. Supporter",
		Content: "<p>This campaign matters.</p>",
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(frag)
	if !strings.Contains(out, "<blockquote") {
		t.Errorf("quote block missing blockquote element")
	}
	if !strings.Contains(out, "<cite") || !strings.Contains(out, "A. Supporter") {
		t.Errorf("quote block missing citation")
	}
}

// TestBlockOverrides verifies author CSS classes and the background
// override reach the outer element.
func TestBlockOverrides(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:       models.BlockTypeText,
		Content:    "<p>x</p>",
		CSSClasses: []string{"hero", "wide"},
		Background: "#fafafa",
		Visible:    true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(frag)
	if !strings.Contains(out, "hero wide") {
		t.Errorf("author classes missing from wrapper: %s", out)
	}
	if !strings.Contains(out, "background-color: #fafafa") {
		t.Errorf("background override missing from wrapper: %s", out)
	}
}

// TestLayoutOptionIgnoredForOtherTypes verifies layout only means
// something on text_image blocks.
func TestLayoutOptionIgnoredForOtherTypes(t *testing.T) {
	r := newTestRenderer(t)

	frag, err := r.Render(&models.ContentBlock{
		Type:    models.BlockTypeText,
		Layout:  models.LayoutStackedReversed,
		Content: "<p>x</p>",
		Visible: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(frag), "bp-split") {
		t.Errorf("layout option leaked into a non-split block: %s", frag)
	}
}
