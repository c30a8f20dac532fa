package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewPollerRejectsBadInterval(t *testing.T) {
	_, err := NewPoller(0, func(context.Context) {})
	require.Error(t, err)

	_, err = NewPoller(-time.Second, func(context.Context) {})
	require.Error(t, err)
}

func TestPollerTicks(t *testing.T) {
	var ticks atomic.Int64
	p, err := NewPoller(20*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))
	defer p.Stop()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 2
	}, 5*time.Second, 10*time.Millisecond, "poller never ticked twice")
}

func TestPollerStop(t *testing.T) {
	var ticks atomic.Int64
	p, err := NewPoller(10*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})
	require.NoError(t, err)

	require.NoError(t, p.Start(context.Background()))
	require.Eventually(t, func() bool {
		return ticks.Load() >= 1
	}, 5*time.Second, 5*time.Millisecond)

	require.NoError(t, p.Stop())
	after := ticks.Load()
	time.Sleep(100 * time.Millisecond)
	require.LessOrEqual(t, ticks.Load(), after+1, "poller kept ticking after Stop")
}
