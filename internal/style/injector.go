// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style owns the active theme style fragment. The fragment is the
// single shared mutable resource of the composition engine: exactly one
// writer, and every Apply replaces the previous fragment in full; tokens
// from an earlier theme never linger. Presentational components read the
// emitted custom properties by name instead of embedding theme values.
package style

import (
	"fmt"
	"html/template"
	"strings"
	"sync"

	"brandpress/internal/theme"
)

// RootSelector scopes the custom properties to the shared render root.
const RootSelector = "[data-bp-root]"

// propPrefix namespaces the emitted custom properties.
const propPrefix = "--bp-"

// Injector serializes a resolved token map into one replaceable style
// fragment. Safe for concurrent readers; Apply is the only writer.
type Injector struct {
	mu       sync.RWMutex
	gen      uint64
	tokens   theme.TokenMap
	override string
	css      string
}

// NewInjector returns an injector with no fragment installed. The first
// Apply installs generation 1.
func NewInjector() *Injector {
	return &Injector{}
}

// Apply installs a new fragment built from the token map, with the raw
// override text appended verbatim after the generated rules. The previous
// fragment is discarded entirely. Returns the new generation number.
func (in *Injector) Apply(tokens theme.TokenMap, override string) uint64 {
	css := serialize(tokens, override)

	in.mu.Lock()
	defer in.mu.Unlock()
	in.gen++
	in.tokens = tokens
	in.override = override
	in.css = css
	return in.gen
}

// Generation returns the generation of the currently installed fragment.
// Zero means nothing has been applied yet.
func (in *Injector) Generation() uint64 {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.gen
}

// CSS returns the raw text of the active fragment, empty before the
// first Apply.
func (in *Injector) CSS() string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.css
}

// Fragment returns the active fragment as a <style> element ready to be
// placed in the shared render root's document head.
func (in *Injector) Fragment() template.HTML {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return wrapStyle(in.css)
}

// FragmentFor renders a style element directly from the given tokens and
// override, reading no shared state. Page builds use this so concurrent
// requests can never observe each other's themes; the injector itself
// stays the process-wide latest-theme record.
func FragmentFor(tokens theme.TokenMap, override string) template.HTML {
	return wrapStyle(serialize(tokens, override))
}

// wrapStyle wraps serialized rules in the tagged style element, empty in
// empty out. The content is trusted output of our own serializer plus
// the backend-supplied override, which arrives pre-sanitized upstream.
func wrapStyle(css string) template.HTML {
	if css == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<style data-bp-theme>` + "\n")
	b.WriteString(css)
	b.WriteString("</style>")
	return template.HTML(b.String())
}

// Lookup returns the effective value of a token in the active fragment
// only. After a theme change it always reflects the latest theme; tokens
// from replaced fragments are unobservable.
func (in *Injector) Lookup(name string) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if in.tokens == nil {
		return "", false
	}
	v, ok := in.tokens[name]
	return v, ok
}

// PropertyName returns the custom-property name emitted for a token,
// e.g. "color-primary" → "--bp-color-primary".
func PropertyName(token string) string {
	return propPrefix + token
}

// serialize renders the token rules in stable token order, then the
// override text verbatim.
func serialize(tokens theme.TokenMap, override string) string {
	var b strings.Builder
	b.WriteString(RootSelector + " {\n")
	for _, name := range theme.TokenNames() {
		if v, ok := tokens[name]; ok {
			fmt.Fprintf(&b, "  %s: %s;\n", PropertyName(name), v)
		}
	}
	b.WriteString("}\n")
	if override != "" {
		b.WriteString(override)
		if !strings.HasSuffix(override, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
