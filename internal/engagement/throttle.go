// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"sync"
	"time"
)

// FrameInterval is the default coalescing window, roughly one animation
// frame at 60Hz.
const FrameInterval = 16 * time.Millisecond

// Throttle coalesces evaluation triggers to at most one per interval.
// The first signal in a quiet period fires immediately; signals arriving
// inside the window overwrite each other and only the latest sample is
// delivered when the window closes. Intermediate samples are dropped,
// never queued for replay.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(Input)

	last    time.Time
	pending *Input
	timer   *time.Timer
	stopped bool
}

// NewThrottle creates a throttle delivering coalesced samples to fn.
// A non-positive interval falls back to FrameInterval.
func NewThrottle(interval time.Duration, fn func(Input)) *Throttle {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &Throttle{interval: interval, fn: fn}
}

// Signal submits a sample. Delivery is synchronous when the window is
// open and deferred to the window edge otherwise.
func (t *Throttle) Signal(in Input) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}

	now := time.Now()
	if t.pending == nil && now.Sub(t.last) >= t.interval {
		t.last = now
		t.mu.Unlock()
		t.fn(in)
		return
	}

	// Inside the window: keep only the newest sample.
	t.pending = &in
	if t.timer == nil {
		wait := t.interval - now.Sub(t.last)
		if wait < 0 {
			wait = 0
		}
		t.timer = time.AfterFunc(wait, t.flush)
	}
	t.mu.Unlock()
}

// flush delivers the coalesced trailing sample.
func (t *Throttle) flush() {
	t.mu.Lock()
	t.timer = nil
	in := t.pending
	t.pending = nil
	if in == nil || t.stopped {
		t.mu.Unlock()
		return
	}
	t.last = time.Now()
	t.mu.Unlock()
	t.fn(*in)
}

// Stop discards any pending sample and prevents further delivery.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
