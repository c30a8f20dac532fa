// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the BrandPress composition server.
// It loads configuration, picks the page source, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"brandpress/internal/blocks"
	"brandpress/internal/compose"
	"brandpress/internal/config"
	"brandpress/internal/fonts"
	"brandpress/internal/handlers"
	"brandpress/internal/metrics"
	"brandpress/internal/middleware"
	"brandpress/internal/refresh"
	"brandpress/internal/router"
	"brandpress/internal/source"
	"brandpress/internal/style"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Serve struct{} `cmd:"" default:"1" help:"Start the composition server"`

	Render struct {
		Slug string `arg:"" help:"Slug of the page to render"`
	} `cmd:"" help:"Compose one page and write the HTML to stdout"`

	Check struct {
		Dir string `arg:"" optional:"" help:"Pages directory (defaults to PAGES_DIR)"`
	} `cmd:"" help:"Validate the page definitions in a local pages directory"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("serve failed", "error", err)
			os.Exit(1)
		}
	case "render <slug>":
		if err := runRender(CLI.Render.Slug); err != nil {
			slog.Error("render failed", "error", err)
			os.Exit(1)
		}
	case "check", "check <dir>":
		if err := runCheck(CLI.Check.Dir); err != nil {
			slog.Error("check failed", "error", err)
			os.Exit(1)
		}
	}
}

// newComposer builds the engine shared by every command: block renderer,
// style injector, and font loader wired to the metrics recorder.
func newComposer(cfg *config.Config, recorder *metrics.Recorder) (*compose.Composer, *fonts.Loader, error) {
	renderer, err := blocks.NewRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("block renderer: %w", err)
	}

	loader := fonts.NewLoader(nil, cfg.FontsCSSURL)
	loader.OnComplete(func(_ uint64, result fonts.Result) {
		recorder.FontLoad(string(result))
	})

	composer, err := compose.New(renderer, style.NewInjector(), loader, cfg.SiteName)
	if err != nil {
		return nil, nil, err
	}
	return composer, loader, nil
}

// newSource picks the configured page source. The returned FileSource is
// non-nil only in local-directory mode.
func newSource(cfg *config.Config) (source.Source, *source.FileSource, error) {
	if cfg.PagesDir != "" {
		fs, err := source.NewFileSource(cfg.PagesDir)
		if err != nil {
			return nil, nil, fmt.Errorf("pages directory: %w", err)
		}
		return fs, fs, nil
	}
	return source.NewHTTPSource(cfg.BackendURL, nil), nil, nil
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	recorder := metrics.NewRecorder(nil)

	composer, _, err := newComposer(cfg, recorder)
	if err != nil {
		return err
	}

	src, fileSrc, err := newSource(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local-directory mode hot-reloads edited page files in development.
	if fileSrc != nil {
		defer fileSrc.Close()
		if cfg.IsDev() {
			if err := fileSrc.Watch(ctx); err != nil {
				return fmt.Errorf("watch pages directory: %w", err)
			}
		}
	}

	// A refresh signal means page definitions or engagement counters
	// changed upstream. Compiled wrappers are dropped so the next request
	// picks everything up fresh. A token naming a page ID narrows the
	// drop to that page; an empty token clears everything.
	refreshFn := func(token string) {
		if token == "" {
			composer.InvalidateWrappers()
		} else {
			composer.InvalidateWrapper(token)
		}
		slog.Info("refresh signal", "token", token)
	}

	// Valkey pub/sub delivers refresh signals pushed by the backend.
	if cfg.ValkeyEnabled() {
		client, err := refresh.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return fmt.Errorf("connect valkey: %w", err)
		}
		defer client.Close()

		notifier := refresh.NewNotifier(client, cfg.RefreshChannel, func(token string) {
			recorder.RefreshSignal()
			refreshFn(token)
		})
		if err := notifier.Start(ctx); err != nil {
			return fmt.Errorf("subscribe refresh channel: %w", err)
		}
		defer notifier.Stop()
	} else {
		slog.Warn("valkey not configured, push refresh signals disabled")
	}

	// Interval polling as a fallback when no pub/sub is available.
	if cfg.RefreshInterval > 0 {
		poller, err := refresh.NewPoller(cfg.RefreshInterval, func(context.Context) {
			recorder.RefreshSignal()
			refreshFn("")
		})
		if err != nil {
			return err
		}
		if err := poller.Start(ctx); err != nil {
			return fmt.Errorf("start refresh poller: %w", err)
		}
		defer poller.Stop()
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer limiter.Stop()

	pages := handlers.NewPages(composer, src, cfg.HomeSlug, recorder, refreshFn)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(pages, recorder, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func runRender(pageSlug string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder(nil)
	composer, _, err := newComposer(cfg, recorder)
	if err != nil {
		return err
	}

	src, fileSrc, err := newSource(cfg)
	if err != nil {
		return err
	}
	if fileSrc != nil {
		defer fileSrc.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	def, err := src.Page(ctx, pageSlug)
	if err != nil {
		return fmt.Errorf("fetch page %q: %w", pageSlug, err)
	}

	out, err := composer.Compose(def)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runCheck(dir string) error {
	if dir == "" {
		dir = os.Getenv("PAGES_DIR")
	}
	if dir == "" {
		return fmt.Errorf("no pages directory: pass one or set PAGES_DIR")
	}

	fs, err := source.NewFileSource(dir)
	if err != nil {
		return err
	}
	defer fs.Close()

	defs := fs.Definitions()
	problems := 0
	for _, def := range defs {
		for _, issue := range source.Validate(def) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", def.Slug, issue)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) in %d page(s)", problems, len(defs))
	}
	fmt.Printf("%d page(s) OK\n", len(defs))
	return nil
}
