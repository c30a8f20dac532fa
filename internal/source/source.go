// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package source supplies page definitions to the composition engine.
// It is the data-fetch collaborator boundary: a backend HTTP API or a
// directory of YAML files, behind one interface. Nothing here persists
// data; definitions are fetched or read, converted, and handed over.
package source

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/google/uuid"

	"brandpress/internal/models"
)

// ErrNotFound reports that no page definition exists for a slug.
var ErrNotFound = errors.New("page not found")

// EngagementCounters carries the live campaign counters delivered with a
// page definition.
type EngagementCounters struct {
	Total  int `json:"total" yaml:"total"`
	Recent int `json:"recent" yaml:"recent"`
}

// PageDefinition is everything the backend supplies for one page: the
// brand theme (or absence), the ordered content blocks, and the campaign
// engagement counters. Version increments on every backend edit and
// keys the compiled wrapper-template cache.
type PageDefinition struct {
	ID      uuid.UUID `json:"id" yaml:"id"`
	Version int       `json:"version" yaml:"version"`
	Slug    string    `json:"slug" yaml:"slug"`
	Title   string    `json:"title" yaml:"title"`

	Theme  *models.Theme         `json:"theme,omitempty" yaml:"theme,omitempty"`
	Blocks []models.ContentBlock `json:"blocks,omitempty" yaml:"blocks,omitempty"`

	Engagement EngagementCounters `json:"engagement" yaml:"engagement"`

	// WrapperTemplate optionally overrides the built-in page frame with
	// a backend-authored Go template.
	WrapperTemplate string `json:"wrapper_template,omitempty" yaml:"wrapper_template,omitempty"`
}

// Source delivers page definitions by slug.
type Source interface {
	// Page returns the definition for a slug, or ErrNotFound.
	Page(ctx context.Context, slug string) (*PageDefinition, error)
}

// Validate reports structural problems in a definition: unknown block
// types or layout options and out-of-range counters. These are warnings
// by nature, since the engine renders through all of them, but authors want
// to hear about them before publishing.
func Validate(def *PageDefinition) []error {
	var problems []error

	if def.Slug == "" {
		problems = append(problems, fmt.Errorf("page %s: empty slug", def.ID))
	}

	for i, b := range def.Blocks {
		if !b.Type.Known() {
			problems = append(problems, fmt.Errorf(
				"block %d (%s): unknown type %q, will render as text", i, b.ID, b.Type))
		}
		if b.Layout != "" && !b.Layout.Known() {
			problems = append(problems, fmt.Errorf(
				"block %d (%s): unknown layout %q", i, b.ID, b.Layout))
		}
		if b.Layout != "" && b.Type != models.BlockTypeTextImage {
			problems = append(problems, fmt.Errorf(
				"block %d (%s): layout %q is ignored for type %q", i, b.ID, b.Layout, b.Type))
		}
		if b.Type == models.BlockTypeImage && b.Image == nil {
			problems = append(problems, fmt.Errorf(
				"block %d (%s): image block without an image", i, b.ID))
		}
	}

	if def.WrapperTemplate != "" {
		if _, err := template.New("wrapper").Parse(def.WrapperTemplate); err != nil {
			problems = append(problems, fmt.Errorf(
				"page %s: wrapper template does not parse, built-in frame will be used: %v",
				def.ID, err))
		}
	}

	if def.Engagement.Total < 0 {
		problems = append(problems, fmt.Errorf("page %s: negative endorsement total", def.ID))
	}
	if def.Engagement.Recent > def.Engagement.Total {
		problems = append(problems, fmt.Errorf(
			"page %s: recent count %d exceeds total %d",
			def.ID, def.Engagement.Recent, def.Engagement.Total))
	}

	return problems
}
