// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the public composed pages.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"brandpress/internal/compose"
	"brandpress/internal/metrics"
	"brandpress/internal/slug"
	"brandpress/internal/source"
)

// Pages groups the public page handlers around the composer and the
// page source.
type Pages struct {
	composer *compose.Composer
	src      source.Source
	homeSlug string
	recorder *metrics.Recorder

	// refreshFn, when set, is invoked by the manual refresh endpoint
	// with the request's token.
	refreshFn func(token string)
}

// NewPages creates the public handler group. refreshFn may be nil when
// no refresh plumbing is configured.
func NewPages(composer *compose.Composer, src source.Source, homeSlug string, recorder *metrics.Recorder, refreshFn func(string)) *Pages {
	return &Pages{
		composer:  composer,
		src:       src,
		homeSlug:  homeSlug,
		recorder:  recorder,
		refreshFn: refreshFn,
	}
}

// Home composes the configured home page.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, p.homeSlug)
}

// Page composes a page by its slug.
func (p *Pages) Page(w http.ResponseWriter, r *http.Request) {
	// Normalize so differently cased or decorated URLs reach the same
	// definition.
	p.serve(w, r, slug.Generate(chi.URLParam(r, "slug")))
}

// Refresh triggers a manual refresh. The token is a page ID narrowing
// the refresh to one page; an empty token means everything.
func (p *Pages) Refresh(w http.ResponseWriter, r *http.Request) {
	if p.refreshFn == nil {
		http.Error(w, "refresh not configured", http.StatusServiceUnavailable)
		return
	}
	token := r.URL.Query().Get("token")
	p.refreshFn(token)
	p.recorder.RefreshSignal()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"accepted"}`))
}

// serve fetches, composes, and writes one page.
func (p *Pages) serve(w http.ResponseWriter, r *http.Request, pageSlug string) {
	start := time.Now()

	def, err := p.src.Page(r.Context(), pageSlug)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			p.recorder.PageComposed("not_found", time.Since(start))
			http.NotFound(w, r)
			return
		}
		slog.Error("page source failed", "slug", pageSlug, "error", err)
		p.recorder.PageComposed("error", time.Since(start))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	out, err := p.composer.Compose(def)
	if err != nil {
		slog.Error("page composition failed", "slug", pageSlug, "error", err)
		p.recorder.PageComposed("error", time.Since(start))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.recorder.PageComposed("ok", time.Since(start))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}
