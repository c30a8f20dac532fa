// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug normalizes page identifiers. Slugs reach the engine from
// three directions: authored in backend page definitions, derived from
// YAML file names or page titles, and arriving raw in request paths.
// All three must land on the same canonical form so a page is always
// reachable under one address.
package slug

import (
	"regexp"
	"strings"
)

var (
	// invalidChars matches everything that is neither a slug character
	// nor a separator.
	invalidChars = regexp.MustCompile(`[^a-z0-9\s_-]`)
	// separators covers whitespace, underscores from file names like
	// save_the_river.yaml, and runs of existing hyphens.
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Generate canonicalizes a title, file name, or route parameter into a
// slug: lowercase, separators collapsed to single hyphens, everything
// else dropped. "Save the River!" and "save_the_river" both become
// "save-the-river".
func Generate(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = invalidChars.ReplaceAllString(out, "")
	out = separators.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
