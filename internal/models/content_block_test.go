package models

import "testing"

// TestBlockTypeKnown verifies the closed set of supported block tags.
func TestBlockTypeKnown(t *testing.T) {
	tests := []struct {
		name string
		bt   BlockType
		want bool
	}{
		{name: "text", bt: BlockTypeText, want: true},
		{name: "image", bt: BlockTypeImage, want: true},
		{name: "text_image", bt: BlockTypeTextImage, want: true},
		{name: "quote", bt: BlockTypeQuote, want: true},
		{name: "stats", bt: BlockTypeStats, want: true},
		{name: "custom_html", bt: BlockTypeCustomHTML, want: true},
		{name: "empty tag", bt: BlockType(""), want: false},
		{name: "future type", bt: BlockType("video"), want: false},
		{name: "uppercase TEXT", bt: BlockType("TEXT"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bt.Known(); got != tt.want {
				t.Errorf("BlockType(%q).Known() = %v, want %v", tt.bt, got, tt.want)
			}
		})
	}
}

// TestLayoutOptionStacked verifies that only the stacked variants force a
// single column at every width.
func TestLayoutOptionStacked(t *testing.T) {
	tests := []struct {
		name string
		lo   LayoutOption
		want bool
	}{
		{name: "normal", lo: LayoutNormal, want: false},
		{name: "reversed", lo: LayoutReversed, want: false},
		{name: "stacked", lo: LayoutStacked, want: true},
		{name: "stacked_reversed", lo: LayoutStackedReversed, want: true},
		{name: "empty option", lo: LayoutOption(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lo.Stacked(); got != tt.want {
				t.Errorf("LayoutOption(%q).Stacked() = %v, want %v", tt.lo, got, tt.want)
			}
		})
	}
}

// TestVisibleSorted verifies filtering of hidden blocks and ascending
// order sorting, including the stable handling of equal orders.
func TestVisibleSorted(t *testing.T) {
	blocks := []ContentBlock{
		{Title: "third", Order: 3, Visible: true},
		{Title: "first", Order: 1, Visible: true},
		{Title: "hidden", Order: 2, Visible: false},
	}

	got := VisibleSorted(blocks)

	if len(got) != 2 {
		t.Fatalf("VisibleSorted returned %d blocks, want 2", len(got))
	}
	if got[0].Title != "first" || got[1].Title != "third" {
		t.Errorf("VisibleSorted order = [%s, %s], want [first, third]",
			got[0].Title, got[1].Title)
	}

	// Input slice must be untouched.
	if blocks[0].Title != "third" {
		t.Errorf("VisibleSorted mutated its input")
	}
}

// TestVisibleSortedStable verifies that blocks sharing an order keep
// their supplied sequence.
func TestVisibleSortedStable(t *testing.T) {
	blocks := []ContentBlock{
		{Title: "a", Order: 5, Visible: true},
		{Title: "b", Order: 5, Visible: true},
		{Title: "c", Order: 5, Visible: true},
	}

	got := VisibleSorted(blocks)

	want := []string{"a", "b", "c"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %s, want %s", i, got[i].Title, title)
		}
	}
}

// TestVisibleSortedEmpty verifies the empty and all-hidden cases.
func TestVisibleSortedEmpty(t *testing.T) {
	if got := VisibleSorted(nil); len(got) != 0 {
		t.Errorf("VisibleSorted(nil) returned %d blocks, want 0", len(got))
	}

	hidden := []ContentBlock{{Visible: false}, {Visible: false}}
	if got := VisibleSorted(hidden); len(got) != 0 {
		t.Errorf("VisibleSorted(all hidden) returned %d blocks, want 0", len(got))
	}
}

// TestClassAttr verifies joining of the optional CSS class list.
func TestClassAttr(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
		want    string
	}{
		{name: "none", classes: nil, want: ""},
		{name: "single", classes: []string{"wide"}, want: "wide"},
		{name: "multiple", classes: []string{"wide", "hero"}, want: "wide hero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &ContentBlock{CSSClasses: tt.classes}
			if got := b.ClassAttr(); got != tt.want {
				t.Errorf("ClassAttr() = %q, want %q", got, tt.want)
			}
		})
	}
}
