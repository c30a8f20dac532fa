// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme resolves a brand Theme into a complete styling-token map.
// Resolution is total: every token has a non-empty built-in fallback, so a
// nil or partial Theme still yields a full map. Token values are opaque;
// malformed CSS passes through verbatim and callers may log anomalies, but
// resolution never fails.
package theme

import "brandpress/internal/models"

// TokenMap maps token names to their effective CSS values.
type TokenMap map[string]string

// Token names. These are the documented contract between the style
// injector and every presentational component: components read custom
// properties by these names instead of embedding theme values.
const (
	TokenColorPrimary           = "color-primary"
	TokenColorSecondary         = "color-secondary"
	TokenColorAccent            = "color-accent"
	TokenColorBackground        = "color-background"
	TokenColorSectionBackground = "color-section-background"
	TokenColorCardBackground    = "color-card-background"
	TokenColorHeading           = "color-heading"
	TokenColorBody              = "color-body"
	TokenColorMuted             = "color-muted"
	TokenColorLink              = "color-link"
	TokenColorLinkHover         = "color-link-hover"
	TokenFontHeading            = "font-heading"
	TokenFontBody               = "font-body"
	TokenSizeBase               = "size-base"
	TokenSizeSmall              = "size-small"
	TokenSizeLarge              = "size-large"
)

// tokenOrder fixes the serialization order of the token set. Iterating a
// map would make the generated style fragment nondeterministic.
var tokenOrder = []string{
	TokenColorPrimary,
	TokenColorSecondary,
	TokenColorAccent,
	TokenColorBackground,
	TokenColorSectionBackground,
	TokenColorCardBackground,
	TokenColorHeading,
	TokenColorBody,
	TokenColorMuted,
	TokenColorLink,
	TokenColorLinkHover,
	TokenFontHeading,
	TokenFontBody,
	TokenSizeBase,
	TokenSizeSmall,
	TokenSizeLarge,
}

// defaults provides the non-empty fallback for every token.
var defaults = TokenMap{
	TokenColorPrimary:           "#2563eb",
	TokenColorSecondary:         "#475569",
	TokenColorAccent:            "#f59e0b",
	TokenColorBackground:        "#ffffff",
	TokenColorSectionBackground: "#f8fafc",
	TokenColorCardBackground:    "#ffffff",
	TokenColorHeading:           "#0f172a",
	TokenColorBody:              "#334155",
	TokenColorMuted:             "#94a3b8",
	TokenColorLink:              "#2563eb",
	TokenColorLinkHover:         "#1d4ed8",
	TokenFontHeading:            `system-ui, -apple-system, "Segoe UI", sans-serif`,
	TokenFontBody:               `system-ui, -apple-system, "Segoe UI", sans-serif`,
	TokenSizeBase:               "1",
	TokenSizeSmall:              "0.875",
	TokenSizeLarge:              "1.25",
}

// TokenNames returns the closed token key set in serialization order.
// The returned slice is a copy.
func TokenNames() []string {
	out := make([]string, len(tokenOrder))
	copy(out, tokenOrder)
	return out
}

// Default returns the built-in fallback value for a token name, or the
// empty string for an unknown name.
func Default(name string) string {
	return defaults[name]
}

// Resolve maps a Theme (possibly nil) to a complete token map and the
// font-load list. Identical theme content always yields an identical
// map, so re-resolution across renders and hydration is safe. No
// network access, no validation.
func Resolve(t *models.Theme) (TokenMap, []string) {
	tokens := make(TokenMap, len(tokenOrder))
	for name, value := range defaults {
		tokens[name] = value
	}

	if t == nil {
		return tokens, nil
	}

	overlay(tokens, TokenColorPrimary, t.Colors.Primary)
	overlay(tokens, TokenColorSecondary, t.Colors.Secondary)
	overlay(tokens, TokenColorAccent, t.Colors.Accent)
	overlay(tokens, TokenColorBackground, t.Colors.Background)
	overlay(tokens, TokenColorSectionBackground, t.Colors.SectionBackground)
	overlay(tokens, TokenColorCardBackground, t.Colors.CardBackground)
	overlay(tokens, TokenColorHeading, t.Colors.Heading)
	overlay(tokens, TokenColorBody, t.Colors.Body)
	overlay(tokens, TokenColorMuted, t.Colors.Muted)
	overlay(tokens, TokenColorLink, t.Colors.Link)
	overlay(tokens, TokenColorLinkHover, t.Colors.LinkHover)
	overlay(tokens, TokenFontHeading, t.Typography.HeadingFont)
	overlay(tokens, TokenFontBody, t.Typography.BodyFont)
	overlay(tokens, TokenSizeBase, t.Typography.BaseSize)
	overlay(tokens, TokenSizeSmall, t.Typography.SmallSize)
	overlay(tokens, TokenSizeLarge, t.Typography.LargeSize)

	return tokens, dedupeFonts(t.Fonts)
}

// overlay replaces the default when the theme supplies a non-empty value.
func overlay(tokens TokenMap, name, value string) {
	if value != "" {
		tokens[name] = value
	}
}

// dedupeFonts removes duplicate family names while preserving the load
// priority order. Empty names are dropped.
func dedupeFonts(families []string) []string {
	if len(families) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(families))
	out := make([]string, 0, len(families))
	for _, f := range families {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
