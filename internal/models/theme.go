// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Theme is an organization's brand configuration: a named bundle of color
// and typography tokens plus an ordered list of remote font families.
// Themes arrive from the backend and are treated as immutable values;
// the composition engine never mutates or persists them.
type Theme struct {
	ID         uuid.UUID       `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Colors     ThemeColors     `json:"colors" yaml:"colors"`
	Typography ThemeTypography `json:"typography" yaml:"typography"`

	// Fonts lists remote font families to load, in priority order.
	// Duplicates are tolerated on input and removed during resolution.
	Fonts []string `json:"fonts,omitempty" yaml:"fonts,omitempty"`

	// CustomCSS is a raw override appended verbatim after the generated
	// token rules. It is never parsed or validated here.
	CustomCSS string `json:"custom_css,omitempty" yaml:"custom_css,omitempty"`

	IsActive  bool      `json:"is_active" yaml:"is_active"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ThemeColors holds the brand color tokens. Empty fields fall back to
// built-in defaults during resolution; non-empty values pass through
// verbatim even when they are not valid CSS colors.
type ThemeColors struct {
	Primary           string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary         string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Accent            string `json:"accent,omitempty" yaml:"accent,omitempty"`
	Background        string `json:"background,omitempty" yaml:"background,omitempty"`
	SectionBackground string `json:"section_background,omitempty" yaml:"section_background,omitempty"`
	CardBackground    string `json:"card_background,omitempty" yaml:"card_background,omitempty"`
	Heading           string `json:"heading,omitempty" yaml:"heading,omitempty"`
	Body              string `json:"body,omitempty" yaml:"body,omitempty"`
	Muted             string `json:"muted,omitempty" yaml:"muted,omitempty"`
	Link              string `json:"link,omitempty" yaml:"link,omitempty"`
	LinkHover         string `json:"link_hover,omitempty" yaml:"link_hover,omitempty"`
}

// ThemeTypography holds the font-family tokens and the base/small/large
// size multipliers. Multipliers are kept as opaque strings; they are
// substituted into calc() expressions, not interpreted.
type ThemeTypography struct {
	HeadingFont string `json:"heading_font,omitempty" yaml:"heading_font,omitempty"`
	BodyFont    string `json:"body_font,omitempty" yaml:"body_font,omitempty"`
	BaseSize    string `json:"base_size,omitempty" yaml:"base_size,omitempty"`
	SmallSize   string `json:"small_size,omitempty" yaml:"small_size,omitempty"`
	LargeSize   string `json:"large_size,omitempty" yaml:"large_size,omitempty"`
}
