// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics exposes Prometheus counters for the composition
// engine: pages composed, font-load outcomes (including discarded stale
// generations), and refresh signals.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder registers and updates the engine's Prometheus metrics.
type Recorder struct {
	registry *prom.Registry

	pagesComposed   *prom.CounterVec
	composeDuration prom.Histogram
	fontLoads       *prom.CounterVec
	refreshSignals  prom.Counter
}

// NewRecorder constructs and registers the metrics on reg, creating a
// fresh registry when reg is nil.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		registry: reg,
		pagesComposed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "brandpress",
			Name:      "pages_composed_total",
			Help:      "Composed pages by outcome",
		}, []string{"outcome"}),
		composeDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "brandpress",
			Name:      "compose_duration_seconds",
			Help:      "Time spent assembling a page",
			Buckets:   prom.DefBuckets,
		}),
		fontLoads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "brandpress",
			Name:      "font_loads_total",
			Help:      "Font stylesheet load completions by result",
		}, []string{"result"}),
		refreshSignals: prom.NewCounter(prom.CounterOpts{
			Namespace: "brandpress",
			Name:      "refresh_signals_total",
			Help:      "Engagement refresh signals received",
		}),
	}

	reg.MustRegister(r.pagesComposed, r.composeDuration, r.fontLoads, r.refreshSignals)
	return r
}

// PageComposed records one page composition with its outcome ("ok",
// "not_found", "error") and duration.
func (r *Recorder) PageComposed(outcome string, d time.Duration) {
	r.pagesComposed.WithLabelValues(outcome).Inc()
	r.composeDuration.Observe(d.Seconds())
}

// FontLoad records a font-load completion result ("applied", "stale",
// "error", "skipped").
func (r *Recorder) FontLoad(result string) {
	r.fontLoads.WithLabelValues(result).Inc()
}

// RefreshSignal records one received refresh signal.
func (r *Recorder) RefreshSignal() {
	r.refreshSignals.Inc()
}

// Handler serves the registry for scraping at /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
