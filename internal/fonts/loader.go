// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fonts loads remote web fonts without ever blocking the render
// path. Load returns immediately; pages render with fallback font stacks
// until the batched stylesheet fetch completes. Theme updates may race
// with in-flight loads, so every request carries a generation tag and a
// completion is applied only while its generation is still the latest;
// stale results are detected at completion time, not cancelled.
package fonts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultStylesheetURL is the Google-Fonts-compatible CSS endpoint used
// when no other provider is configured.
const DefaultStylesheetURL = "https://fonts.googleapis.com/css2"

// fetchTimeout bounds a single stylesheet fetch. A slow provider only
// delays the visual upgrade, never the page.
const fetchTimeout = 15 * time.Second

// Result describes the outcome of one Load call, for metrics and test
// instrumentation.
type Result string

const (
	ResultApplied Result = "applied" // stylesheet fetched and installed
	ResultStale   Result = "stale"   // completed after a newer generation applied
	ResultError   Result = "error"   // fetch failed; fallback stacks remain
	ResultSkipped Result = "skipped" // all families already loaded, no request
)

// Doer issues HTTP requests. *http.Client satisfies it; tests inject
// their own.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Loader batches font-family requests into single stylesheet fetches.
// All methods are safe for concurrent use.
type Loader struct {
	doer    Doer
	baseURL string

	mu     sync.Mutex
	gen    uint64
	loaded map[string]bool
	css    string

	// onComplete, when set, is invoked once per Load call after its
	// outcome is known. Used for metrics and test instrumentation.
	onComplete func(gen uint64, result Result)
}

// NewLoader creates a loader that fetches stylesheets from baseURL via
// doer. A nil doer falls back to http.DefaultClient; an empty baseURL
// falls back to DefaultStylesheetURL.
func NewLoader(doer Doer, baseURL string) *Loader {
	if doer == nil {
		doer = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultStylesheetURL
	}
	return &Loader{
		doer:    doer,
		baseURL: baseURL,
		loaded:  make(map[string]bool),
	}
}

// OnComplete registers a completion notification hook. Must be set
// before the first Load.
func (l *Loader) OnComplete(fn func(gen uint64, result Result)) {
	l.onComplete = fn
}

// Load requests the given families in one batched stylesheet fetch and
// returns immediately. Families already loaded are not re-requested; a
// call whose entire set is loaded issues no request at all. Failures
// degrade silently to fallback stacks.
func (l *Loader) Load(families []string) uint64 {
	l.mu.Lock()

	missing := make([]string, 0, len(families))
	seen := make(map[string]bool, len(families))
	for _, f := range families {
		if f == "" || seen[f] || l.loaded[f] {
			continue
		}
		seen[f] = true
		missing = append(missing, f)
	}

	if len(missing) == 0 {
		gen := l.gen
		l.mu.Unlock()
		l.notify(gen, ResultSkipped)
		return gen
	}

	l.gen++
	gen := l.gen
	l.mu.Unlock()

	go l.fetch(gen, missing)
	return gen
}

// CSS returns the stylesheet text accumulated from every applied batch,
// empty while nothing has completed yet. Rules for a loaded family stay
// available after later batches land, so any page whose families are
// loaded finds them here.
func (l *Loader) CSS() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.css
}

// Loaded reports whether a family has been fetched successfully.
func (l *Loader) Loaded(family string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded[family]
}

// StylesheetURL builds the single batched request URL for the families.
func (l *Loader) StylesheetURL(families []string) string {
	var b strings.Builder
	b.WriteString(l.baseURL)
	sep := "?"
	for _, f := range families {
		b.WriteString(sep)
		b.WriteString("family=")
		b.WriteString(url.QueryEscape(f))
		sep = "&"
	}
	b.WriteString(sep)
	b.WriteString("display=swap")
	return b.String()
}

// fetch performs the batched stylesheet request for one generation and
// applies the result if the generation is still current.
func (l *Loader) fetch(gen uint64, families []string) {
	css, err := l.request(families)
	if err != nil {
		// Never surfaced to the caller: the page keeps its fallback
		// stacks and the operator sees a warning.
		slog.Warn("font stylesheet fetch failed",
			"families", strings.Join(families, ", "),
			"generation", gen,
			"error", err,
		)
		l.notify(gen, ResultError)
		return
	}

	l.mu.Lock()
	if gen != l.gen {
		// A newer theme requested fonts while this fetch was in
		// flight. The visible fonts must converge to the latest
		// request, so this completion is discarded.
		l.mu.Unlock()
		slog.Debug("stale font load discarded", "generation", gen)
		l.notify(gen, ResultStale)
		return
	}
	if l.css != "" && !strings.HasSuffix(l.css, "\n") {
		l.css += "\n"
	}
	l.css += css
	for _, f := range families {
		l.loaded[f] = true
	}
	l.mu.Unlock()

	slog.Debug("font stylesheet applied",
		"families", strings.Join(families, ", "),
		"generation", gen,
	)
	l.notify(gen, ResultApplied)
}

// request issues the single HTTP fetch covering all families.
func (l *Loader) request(families []string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.StylesheetURL(families), nil)
	if err != nil {
		return "", fmt.Errorf("build font request: %w", err)
	}

	resp, err := l.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch font stylesheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("font stylesheet status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read font stylesheet: %w", err)
	}
	return string(body), nil
}

func (l *Loader) notify(gen uint64, result Result) {
	if l.onComplete != nil {
		l.onComplete(gen, result)
	}
}
