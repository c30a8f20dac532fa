// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes and middleware chain.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandpress/internal/handlers"
	"brandpress/internal/metrics"
	"brandpress/internal/middleware"
	"brandpress/web"
)

// New builds the server's route tree. The rate limiter applies to the
// public page routes only; health, metrics, and static assets stay
// unthrottled.
func New(pages *handlers.Pages, recorder *metrics.Recorder, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", recorder.Handler())
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	r.Post("/refresh", pages.Refresh)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Get("/", pages.Home)
		r.Get("/{slug}", pages.Page)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
