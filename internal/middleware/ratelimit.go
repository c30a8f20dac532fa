// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// clientWindow holds the request timestamps for one client that are
// still inside the sliding window.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// RateLimiter throttles page composition per client IP with a sliding
// window. Page rendering is the expensive path here, so the limiter
// wraps only the page routes; health and metrics stay unthrottled.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// NewRateLimiter creates a limiter allowing perMinute requests per
// client per minute, matching the RATE_LIMIT configuration semantics.
// A non-positive perMinute disables throttling entirely.
func NewRateLimiter(perMinute int) *RateLimiter {
	return newRateLimiter(perMinute, time.Minute)
}

func newRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}
	if rl.disabled() {
		return rl
	}

	// Idle clients are dropped after two full windows without activity.
	go func() {
		ticker := time.NewTicker(2 * window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.evictIdle()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background eviction goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) disabled() bool {
	return rl.limit <= 0
}

// allow reports whether key may proceed now. When it may not, the
// second return value is how long until the oldest counted request
// leaves the window.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.RLock()
	cw := rl.clients[key]
	rl.mu.RUnlock()

	if cw == nil {
		rl.mu.Lock()
		cw = rl.clients[key]
		if cw == nil {
			cw = &clientWindow{}
			rl.clients[key] = cw
		}
		rl.mu.Unlock()
	}

	now := time.Now()
	cutoff := now.Add(-rl.window)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	live := cw.hits[:0]
	for _, ts := range cw.hits {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}
	cw.hits = live

	if len(cw.hits) >= rl.limit {
		return false, cw.hits[0].Add(rl.window).Sub(now)
	}
	cw.hits = append(cw.hits, now)
	return true, 0
}

// evictIdle drops clients whose every recorded request has aged out.
func (rl *RateLimiter) evictIdle() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.clients {
		cw.mu.Lock()
		idle := len(cw.hits) == 0 || !cw.hits[len(cw.hits)-1].After(cutoff)
		cw.mu.Unlock()
		if idle {
			delete(rl.clients, key)
		}
	}
}

// Middleware throttles by client IP, answering 429 with a Retry-After
// hint when the window is exhausted.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.disabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryIn := rl.allow(clientIP(r))
		if !ok {
			secs := int(retryIn.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating client address, honoring the proxy
// headers set by the deployments fronting the server.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
