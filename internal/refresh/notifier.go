// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package refresh delivers the externally triggered refresh signals that
// re-evaluate engagement state: a Valkey pub/sub notifier for push-style
// backends and an interval poller for pull-style ones. Neither stores
// anything; Valkey is used strictly as a message channel here.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel carrying refresh tokens.
const DefaultChannel = "brandpress:refresh"

// ConnectValkey creates a Valkey client and verifies the connection with
// a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Notifier subscribes to a pub/sub channel and invokes the callback with
// each message payload: the refresh token, a page ID narrowing the
// refresh to one page, or empty meaning everything.
type Notifier struct {
	client  *redis.Client
	channel string
	fn      func(token string)
	pubsub  *redis.PubSub
}

// NewNotifier creates a notifier delivering payloads from channel to fn.
// An empty channel name falls back to DefaultChannel.
func NewNotifier(client *redis.Client, channel string, fn func(token string)) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{client: client, channel: channel, fn: fn}
}

// Start subscribes and begins delivering messages in a background
// goroutine until the context is cancelled or Stop is called.
func (n *Notifier) Start(ctx context.Context) error {
	n.pubsub = n.client.Subscribe(ctx, n.channel)

	// Receive forces the subscription handshake so a bad connection
	// surfaces here instead of silently dropping messages.
	if _, err := n.pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", n.channel, err)
	}

	slog.Info("refresh notifier subscribed", "channel", n.channel)

	go func() {
		ch := n.pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				slog.Debug("refresh signal received", "token", msg.Payload)
				n.fn(msg.Payload)
			}
		}
	}()
	return nil
}

// Stop closes the subscription.
func (n *Notifier) Stop() error {
	if n.pubsub == nil {
		return nil
	}
	return n.pubsub.Close()
}
