// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// BlockType is the closed tag that selects a content block's layout rule.
// Unknown tags are not an error: the renderer falls back to the text
// layout so content authored for newer types still displays.
type BlockType string

const (
	BlockTypeText       BlockType = "text"
	BlockTypeImage      BlockType = "image"
	BlockTypeTextImage  BlockType = "text_image"
	BlockTypeQuote      BlockType = "quote"
	BlockTypeStats      BlockType = "stats"
	BlockTypeCustomHTML BlockType = "custom_html"
)

// Known reports whether the tag is one of the six supported block types.
func (t BlockType) Known() bool {
	switch t {
	case BlockTypeText, BlockTypeImage, BlockTypeTextImage,
		BlockTypeQuote, BlockTypeStats, BlockTypeCustomHTML:
		return true
	}
	return false
}

// LayoutOption controls the column arrangement of a text_image block.
// It is ignored for every other block type.
type LayoutOption string

const (
	LayoutNormal          LayoutOption = "normal"
	LayoutReversed        LayoutOption = "reversed"
	LayoutStacked         LayoutOption = "stacked"
	LayoutStackedReversed LayoutOption = "stacked_reversed"
)

// Known reports whether the layout option is one of the supported values.
func (l LayoutOption) Known() bool {
	switch l {
	case LayoutNormal, LayoutReversed, LayoutStacked, LayoutStackedReversed:
		return true
	}
	return false
}

// Stacked reports whether the option forces a single column at every width.
func (l LayoutOption) Stacked() bool {
	return l == LayoutStacked || l == LayoutStackedReversed
}

// VerticalAlignment sets the cross-axis alignment of a two-column block.
type VerticalAlignment string

const (
	AlignTop    VerticalAlignment = "top"
	AlignMiddle VerticalAlignment = "middle"
	AlignBottom VerticalAlignment = "bottom"
)

// BlockImage references a remote image with its accessibility text.
// Media is hosted upstream; only the URL travels through this engine.
type BlockImage struct {
	URL string `json:"url" yaml:"url"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// ContentBlock is one atomic, ordered, typed unit of page content.
// Content is HTML that was sanitized upstream; this engine renders it
// as-is and never sanitizes.
type ContentBlock struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Content   string    `json:"content,omitempty" yaml:"content,omitempty"`
	Type      BlockType `json:"type" yaml:"type"`

	Image *BlockImage `json:"image,omitempty" yaml:"image,omitempty"`

	// Layout is meaningful only when Type is text_image.
	Layout    LayoutOption      `json:"layout,omitempty" yaml:"layout,omitempty"`
	Alignment VerticalAlignment `json:"alignment,omitempty" yaml:"alignment,omitempty"`

	Visible bool `json:"visible" yaml:"visible"`
	Order   int  `json:"order" yaml:"order"`

	// CSSClasses and Background are optional presentation overrides
	// attached to the block's outermost element.
	CSSClasses []string `json:"css_classes,omitempty" yaml:"css_classes,omitempty"`
	Background string   `json:"background,omitempty" yaml:"background,omitempty"`
}

// ClassAttr joins the optional CSS class list for an HTML class attribute.
func (b *ContentBlock) ClassAttr() string {
	return strings.Join(b.CSSClasses, " ")
}

// VisibleSorted returns the blocks that should render, in render order:
// hidden blocks removed, the rest sorted ascending by Order. The sort is
// stable so equal orders keep their supplied sequence. The input slice
// is not modified.
func VisibleSorted(blocks []ContentBlock) []ContentBlock {
	out := make([]ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Visible {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
