// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"brandpress/internal/models"
	"brandpress/internal/slug"
)

// FileSource reads page definitions from a directory of YAML files.
// Definitions load once at construction; Watch keeps them current by
// reloading on file changes (debounced). Intended for local preview and
// for deployments where the backend publishes static page exports.
type FileSource struct {
	dir      string
	debounce time.Duration

	mu    sync.RWMutex
	pages map[string]*PageDefinition

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// fileBlock is the on-disk block shape. It differs from the engine model
// in three ways: content may be authored as Markdown (format: markdown),
// visibility defaults to true when omitted, and an omitted order falls
// back to the block's document position.
type fileBlock struct {
	ID         uuid.UUID                `yaml:"id"`
	Title      string                   `yaml:"title"`
	Content    string                   `yaml:"content"`
	Format     string                   `yaml:"format"`
	Type       models.BlockType         `yaml:"type"`
	Image      *models.BlockImage       `yaml:"image"`
	Layout     models.LayoutOption      `yaml:"layout"`
	Alignment  models.VerticalAlignment `yaml:"alignment"`
	Visible    *bool                    `yaml:"visible"`
	Order      *int                     `yaml:"order"`
	CSSClasses []string                 `yaml:"css_classes"`
	Background string                   `yaml:"background"`
}

// filePage is the on-disk page shape.
type filePage struct {
	ID              uuid.UUID          `yaml:"id"`
	Version         int                `yaml:"version"`
	Slug            string             `yaml:"slug"`
	Title           string             `yaml:"title"`
	Theme           *models.Theme      `yaml:"theme"`
	Blocks          []fileBlock        `yaml:"blocks"`
	Engagement      EngagementCounters `yaml:"engagement"`
	WrapperTemplate string             `yaml:"wrapper_template"`
}

// NewFileSource loads every *.yaml/*.yml page in dir.
func NewFileSource(dir string) (*FileSource, error) {
	s := &FileSource{
		dir:      dir,
		debounce: 500 * time.Millisecond,
		pages:    make(map[string]*PageDefinition),
		stopCh:   make(chan struct{}),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Page returns the definition for a slug, or ErrNotFound.
func (s *FileSource) Page(_ context.Context, pageSlug string) (*PageDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.pages[pageSlug]
	if !ok {
		return nil, ErrNotFound
	}
	return def, nil
}

// Definitions returns every loaded definition sorted by slug, for the
// check command.
func (s *FileSource) Definitions() []*PageDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*PageDefinition, 0, len(s.pages))
	for _, def := range s.pages {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Watch starts a debounced directory watcher that reloads definitions on
// change. Returns after starting the background goroutine.
func (s *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create page watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch pages directory %s: %w", s.dir, err)
	}
	s.watcher = watcher

	slog.Info("watching pages directory", "dir", s.dir)
	go s.watchLoop(ctx)
	return nil
}

// Close stops the watcher if one is running.
func (s *FileSource) Close() error {
	close(s.stopCh)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// watchLoop coalesces bursts of filesystem events into one reload.
func (s *FileSource) watchLoop(ctx context.Context) {
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				timerCh = timer.C
			} else {
				timer.Reset(s.debounce)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("pages watcher error", "error", err)
		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := s.reload(); err != nil {
				slog.Warn("pages reload failed, keeping previous definitions", "error", err)
			} else {
				slog.Info("pages reloaded", "dir", s.dir)
			}
		}
	}
}

// relevantEvent filters to YAML writes, creates, removes, and renames.
func relevantEvent(ev fsnotify.Event) bool {
	ext := strings.ToLower(filepath.Ext(ev.Name))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// reload parses the whole directory and swaps the page map atomically.
// A parse failure in one file skips that file, not the whole reload.
func (s *FileSource) reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read pages directory %s: %w", s.dir, err)
	}

	pages := make(map[string]*PageDefinition)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		def, err := parsePageFile(path)
		if err != nil {
			slog.Warn("skipping unparsable page file", "path", path, "error", err)
			continue
		}
		pages[def.Slug] = def
	}

	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()
	return nil
}

// parsePageFile reads one YAML page definition, converting Markdown
// blocks to HTML and filling derived fields.
func parsePageFile(path string) (*PageDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fp filePage
	if err := yaml.Unmarshal(raw, &fp); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	def := &PageDefinition{
		ID:              fp.ID,
		Version:         fp.Version,
		Slug:            fp.Slug,
		Title:           fp.Title,
		Theme:           fp.Theme,
		Engagement:      fp.Engagement,
		WrapperTemplate: fp.WrapperTemplate,
	}
	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}
	if def.Slug == "" {
		if fp.Title != "" {
			def.Slug = slug.Generate(fp.Title)
		} else {
			def.Slug = slug.Generate(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		}
	}

	def.Blocks = make([]models.ContentBlock, 0, len(fp.Blocks))
	for i, fb := range fp.Blocks {
		b, err := fb.toModel(i)
		if err != nil {
			return nil, fmt.Errorf("block %d in %s: %w", i, filepath.Base(path), err)
		}
		def.Blocks = append(def.Blocks, b)
	}

	return def, nil
}

// toModel converts an on-disk block to the engine model. idx supplies a
// fallback order for files that rely on document position.
func (fb *fileBlock) toModel(idx int) (models.ContentBlock, error) {
	content := fb.Content
	if strings.EqualFold(fb.Format, "markdown") {
		html, err := markdownToHTML(content)
		if err != nil {
			return models.ContentBlock{}, fmt.Errorf("convert markdown: %w", err)
		}
		content = html
	}

	id := fb.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	visible := true
	if fb.Visible != nil {
		visible = *fb.Visible
	}

	// Pointer distinguishes an explicit "order: 0" from an omitted key,
	// same as Visible above.
	order := idx + 1
	if fb.Order != nil {
		order = *fb.Order
	}

	return models.ContentBlock{
		ID:         id,
		Title:      fb.Title,
		Content:    content,
		Type:       fb.Type,
		Image:      fb.Image,
		Layout:     fb.Layout,
		Alignment:  fb.Alignment,
		Visible:    visible,
		Order:      order,
		CSSClasses: fb.CSSClasses,
		Background: fb.Background,
	}, nil
}
