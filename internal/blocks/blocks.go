// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks renders content blocks into HTML fragments. Rendering is
// a stateless dispatch over the closed block-type tag; tags this version
// does not recognize fall back to the text layout so pages keep working
// across content-schema drift in either direction.
//
// The text_image type carries the only breakpoint-dependent contract:
// "reversed" swaps visual order with CSS at the wide breakpoint while
// document order stays text-then-image, whereas "stacked_reversed" swaps
// the actual document order, changing assistive-technology reading order
// too. The two mechanisms are deliberately distinct.
package blocks

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"brandpress/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the compiled per-type templates. Construct once, use
// from any goroutine.
type Renderer struct {
	templates map[models.BlockType]*template.Template
}

// blockData is the execution context for every block template.
type blockData struct {
	Title   string
	Content template.HTML
	Image   *models.BlockImage
	Classes string
	Style   template.CSS

	// WrapperClass and ImageFirst drive the text_image layout contract.
	WrapperClass string
	ImageFirst   bool
}

// templateNames maps each known block type to its embedded template file.
var templateNames = map[models.BlockType]string{
	models.BlockTypeText:       "text.html",
	models.BlockTypeImage:      "image.html",
	models.BlockTypeTextImage:  "text_image.html",
	models.BlockTypeQuote:      "quote.html",
	models.BlockTypeStats:      "stats.html",
	models.BlockTypeCustomHTML: "custom_html.html",
}

// NewRenderer parses the embedded block templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[models.BlockType]*template.Template, len(templateNames))}
	for bt, file := range templateNames {
		tmpl, err := template.ParseFS(templateFS, "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse block template %s: %w", file, err)
		}
		r.templates[bt] = tmpl
	}
	return r, nil
}

// Render produces the HTML fragment for one block. Unknown types render
// through the text path instead of failing.
func (r *Renderer) Render(b *models.ContentBlock) (template.HTML, error) {
	tmpl, ok := r.templates[b.Type]
	if !ok {
		tmpl = r.templates[models.BlockTypeText]
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, r.data(b)); err != nil {
		return "", fmt.Errorf("render block %s: %w", b.ID, err)
	}
	return template.HTML(sb.String()), nil
}

// RenderAll renders the visible blocks in ascending order and joins the
// fragments. A block that fails to render is skipped, not fatal.
func (r *Renderer) RenderAll(all []models.ContentBlock) template.HTML {
	var sb strings.Builder
	for _, b := range models.VisibleSorted(all) {
		frag, err := r.Render(&b)
		if err != nil {
			// Degrade to the remaining blocks; the caller may log.
			continue
		}
		sb.WriteString(string(frag))
		sb.WriteString("\n")
	}
	return template.HTML(sb.String())
}

// data builds the template context, computing the layout classes for
// text_image blocks.
func (r *Renderer) data(b *models.ContentBlock) blockData {
	d := blockData{
		Title:   b.Title,
		Content: template.HTML(b.Content), // sanitized upstream
		Image:   b.Image,
		Classes: b.ClassAttr(),
	}
	if b.Background != "" {
		d.Style = template.CSS("background-color: " + b.Background)
	}
	if b.Type == models.BlockTypeTextImage {
		d.WrapperClass = splitClasses(b)
		// Only stacked_reversed changes document order; plain reversed
		// is a visual-only swap expressed in CSS at the breakpoint.
		d.ImageFirst = b.Layout == models.LayoutStackedReversed
	}
	return d
}

// splitClasses derives the text_image wrapper modifiers: column count,
// breakpoint reversal, and cross-axis alignment.
func splitClasses(b *models.ContentBlock) string {
	classes := make([]string, 0, 2)

	if b.Layout.Stacked() {
		classes = append(classes, "bp-split--stacked")
	} else if b.Layout == models.LayoutReversed {
		classes = append(classes, "bp-split--reversed")
	}

	switch b.Alignment {
	case models.AlignTop:
		classes = append(classes, "bp-split--top")
	case models.AlignBottom:
		classes = append(classes, "bp-split--bottom")
	default:
		classes = append(classes, "bp-split--middle")
	}

	return strings.Join(classes, " ")
}
