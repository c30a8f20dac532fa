// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go memoizes compiled wrapper templates. Keying by page ID plus
// version means a backend edit (which bumps the version) is a natural
// cache miss; no invalidation protocol needed for the common path.
// This is compile memoization only; rendered responses are never cached.
package compose

import (
	"html/template"
	"log/slog"
	"sync"
)

type cacheKey struct {
	id      string // page UUID as string
	version int
}

// wrapperCache is a concurrency-safe cache of compiled wrapper templates.
type wrapperCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*template.Template
}

func newWrapperCache() *wrapperCache {
	return &wrapperCache{entries: make(map[cacheKey]*template.Template)}
}

// get retrieves a compiled wrapper. Returns nil on miss.
func (c *wrapperCache) get(id string, version int) *template.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[cacheKey{id: id, version: version}]
}

// put stores a compiled wrapper.
func (c *wrapperCache) put(id string, version int, tmpl *template.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{id: id, version: version}] = tmpl
	slog.Debug("wrapper template cached", "id", id, "version", version, "size", len(c.entries))
}

// invalidate removes all cached versions for a page ID.
func (c *wrapperCache) invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.id == id {
			delete(c.entries, k)
		}
	}
}

// invalidateAll clears the cache, used when the page source reloads
// wholesale.
func (c *wrapperCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*template.Template)
}
