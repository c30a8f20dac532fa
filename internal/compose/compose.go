// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package compose assembles full pages from backend-supplied page
// definitions: it resolves the theme into the style fragment, kicks off
// the web-font load, renders the content blocks, and wraps everything in
// the page frame with the engagement-driven call-to-action.
package compose

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"brandpress/internal/blocks"
	"brandpress/internal/engagement"
	"brandpress/internal/fonts"
	"brandpress/internal/models"
	"brandpress/internal/source"
	"brandpress/internal/style"
	"brandpress/internal/theme"
)

//go:embed templates/page.html
var frameFS embed.FS

// PageData holds all variables available to the page frame and to
// backend-authored wrapper templates.
type PageData struct {
	SiteName string
	Title    string
	Slug     string

	// StyleFragment is the active theme style element; FontFragment
	// inlines the loaded font stylesheet once the batched fetch has
	// completed (empty until then; fallback stacks carry the page).
	StyleFragment template.HTML
	FontFragment  template.HTML

	Blocks template.HTML

	Engagement   models.EngagementState
	CTAHeading   string
	CTAMessage   string
	MomentumNote string

	Year int
}

// Composer builds pages. Safe for concurrent use.
type Composer struct {
	renderer *blocks.Renderer
	injector *style.Injector
	fonts    *fonts.Loader
	cache    *wrapperCache
	frame    *template.Template
	siteName string
}

// New creates a composer around the shared injector and font loader.
func New(renderer *blocks.Renderer, injector *style.Injector, loader *fonts.Loader, siteName string) (*Composer, error) {
	frame, err := template.ParseFS(frameFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page frame: %w", err)
	}
	return &Composer{
		renderer: renderer,
		injector: injector,
		fonts:    loader,
		cache:    newWrapperCache(),
		frame:    frame,
		siteName: siteName,
	}, nil
}

// InvalidateWrappers clears the compiled wrapper cache. Called when the
// page source reloads wholesale.
func (c *Composer) InvalidateWrappers() {
	c.cache.invalidateAll()
}

// InvalidateWrapper drops the cached wrapper compilations of one page,
// for refresh signals that name a specific page ID.
func (c *Composer) InvalidateWrapper(id string) {
	c.cache.invalidate(id)
}

// Compose renders a complete page for the definition. Theme resolution
// is total and font loading is fire-and-forget, so the only error paths
// are template execution failures.
func (c *Composer) Compose(def *source.PageDefinition) ([]byte, error) {
	tokens, fontList := theme.Resolve(def.Theme)

	override := ""
	if def.Theme != nil {
		override = def.Theme.CustomCSS
	}
	// Record the latest theme on the shared injector, but build this
	// page's fragment from the local resolution: a concurrent request
	// applying another theme between the write and a shared read would
	// otherwise bleed its palette into this page.
	c.injector.Apply(tokens, override)
	styleFragment := style.FragmentFor(tokens, override)

	// Returns immediately; the page renders with fallback stacks until
	// the batched stylesheet fetch lands.
	c.fonts.Load(fontList)

	state := engagement.Evaluate(engagement.Input{
		CampaignID:       def.ID,
		EndorsementCount: def.Engagement.Total,
		RecentCount:      def.Engagement.Recent,
		// Initial paint: scroll origin, so the sticky CTA starts hidden.
	})

	data := PageData{
		SiteName:      c.siteName,
		Title:         def.Title,
		Slug:          def.Slug,
		StyleFragment: styleFragment,
		FontFragment:  c.fontFragment(),
		Blocks:        c.renderer.RenderAll(def.Blocks),
		Engagement:    state,
		Year:          time.Now().Year(),
	}
	data.CTAHeading, data.CTAMessage, data.MomentumNote = ctaCopy(state)

	tmpl := c.frame
	if def.WrapperTemplate != "" {
		if wt, err := c.wrapper(def); err != nil {
			slog.Warn("wrapper template invalid, using built-in frame",
				"page", def.Slug, "error", err)
		} else {
			tmpl = wt
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, &data); err != nil {
		if tmpl != c.frame {
			slog.Warn("wrapper template failed at execution, using built-in frame",
				"page", def.Slug, "error", err)
			buf.Reset()
			if err := c.frame.Execute(&buf, &data); err != nil {
				return nil, fmt.Errorf("render page %q: %w", def.Slug, err)
			}
			return buf.Bytes(), nil
		}
		return nil, fmt.Errorf("render page %q: %w", def.Slug, err)
	}
	return buf.Bytes(), nil
}

// wrapper returns the compiled wrapper template for the definition,
// compiling and caching on miss.
func (c *Composer) wrapper(def *source.PageDefinition) (*template.Template, error) {
	id := def.ID.String()
	if tmpl := c.cache.get(id, def.Version); tmpl != nil {
		return tmpl, nil
	}

	tmpl, err := template.New("wrapper").Parse(def.WrapperTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse wrapper: %w", err)
	}
	c.cache.put(id, def.Version, tmpl)
	return tmpl, nil
}

// fontFragment inlines the loaded font stylesheet, empty while the
// fetch is outstanding or has failed.
func (c *Composer) fontFragment() template.HTML {
	css := c.fonts.CSS()
	if css == "" {
		return ""
	}
	return template.HTML("<style data-bp-fonts>\n" + css + "\n</style>")
}

// ctaCopy derives the call-to-action copy from the engagement tier.
func ctaCopy(s models.EngagementState) (heading, message, momentum string) {
	switch s.Tier {
	case models.TierFirst:
		heading = "Be the first to endorse"
		message = "Your endorsement starts the momentum."
	case models.TierEarly:
		heading = "Join the early supporters"
		message = fmt.Sprintf("%d people have endorsed so far.", s.EndorsementCount)
	default:
		heading = "Add your endorsement"
		message = fmt.Sprintf("%d people have endorsed.", s.EndorsementCount)
	}
	if s.Momentum {
		momentum = fmt.Sprintf("%d endorsements in the last 7 days.", s.RecentCount)
	}
	return heading, message, momentum
}
