// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Poller periodically invokes a refresh function, for backends that
// expose no push channel. Completion of each tick re-evaluates the
// engagement state downstream; the tick itself never blocks rendering.
type Poller struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	fn        func(ctx context.Context)
}

// NewPoller creates a poller that calls fn every interval.
func NewPoller(interval time.Duration, fn func(ctx context.Context)) (*Poller, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poller interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Poller{scheduler: s, interval: interval, fn: fn}, nil
}

// Start schedules the periodic refresh and begins running.
func (p *Poller) Start(ctx context.Context) error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.fn(ctx) }),
		gocron.WithName("engagement-refresh"),
	)
	if err != nil {
		return fmt.Errorf("schedule refresh job: %w", err)
	}

	p.scheduler.Start()
	slog.Info("refresh poller started", "interval", p.interval.String())
	return nil
}

// Stop shuts the scheduler down, waiting for a running tick to finish.
func (p *Poller) Stop() error {
	return p.scheduler.Shutdown()
}
