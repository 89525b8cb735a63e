// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/murmur/internal/config"
	"github.com/tomtom215/murmur/internal/events"
	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/outbox"
)

// EventsComponents holds the activity pipeline: the outbox the services
// write to, the relay that publishes it, and the consumer reading the stream
// back.
type EventsComponents struct {
	server    *events.EmbeddedServer
	natsConn  *natsgo.Conn
	publisher *events.Publisher
	store     *outbox.Store
	relay     *outbox.Relay

	consumerCfg events.ConsumerConfig
	consumer    *events.Consumer
	consumerErr chan error

	mu      sync.Mutex
	running bool
}

// InitEvents starts (or connects to) NATS, ensures the activity stream,
// and opens the outbox. It returns nil components when events are disabled.
//
// Initialization steps:
//  1. Start embedded NATS server (if configured)
//  2. Connect and create/update the JetStream stream
//  3. Create the publisher behind its circuit breaker
//  4. Open the badger outbox and build the relay
func InitEvents(ctx context.Context, cfg *config.EventsConfig) (*EventsComponents, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Activity events disabled")
		return nil, nil
	}

	c := &EventsComponents{}
	url := cfg.NATSURL

	// Step 1: Embedded server
	if cfg.Embedded {
		srv, err := events.NewEmbeddedServer(events.ServerConfig{
			Port:     -1,
			StoreDir: cfg.StoreDir,
		})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		c.server = srv
		url = srv.ClientURL()
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	// Step 2: Stream
	nc, err := natsgo.Connect(url,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	c.natsConn = nc

	if _, err := events.EnsureStream(ctx, nc, events.DefaultStreamConfig(cfg.StreamName)); err != nil {
		c.Close(ctx)
		return nil, err
	}
	logging.Info().Str("stream", cfg.StreamName).Msg("Activity stream ready")

	// Step 3: Publisher
	pubCfg := events.DefaultPublisherConfig(url)
	pubCfg.Breaker.FailureThreshold = cfg.BreakerFailures
	c.publisher, err = events.NewPublisher(pubCfg)
	if err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	// Step 4: Outbox
	c.store, err = outbox.Open(outbox.Config{Path: cfg.OutboxPath})
	if err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("open outbox: %w", err)
	}
	c.relay = outbox.NewRelay(c.store, c.publisher, outbox.RelayConfig{
		Interval: cfg.RelayInterval,
		Rate:     cfg.RelayRate,
	})

	c.consumerCfg = events.DefaultConsumerConfig(url, cfg.StreamName)

	logging.Info().Msg("Activity events initialized")
	return c, nil
}

// Emitter returns the emitter the services write activity to. A nil
// receiver yields a no-op emitter.
func (c *EventsComponents) Emitter() events.Emitter {
	if c == nil {
		return events.NopEmitter{}
	}
	return c.store
}

// Relay returns the outbox relay service, nil when events are disabled.
func (c *EventsComponents) Relay() *outbox.Relay {
	if c == nil {
		return nil
	}
	return c.relay
}

// Start builds a fresh consumer and waits until its handlers are
// subscribed. A consumer router cannot be restarted after Close, so every
// supervisor restart gets a new one.
func (c *EventsComponents) Start(ctx context.Context) error {
	if c == nil {
		return nil
	}

	consumer, err := events.NewConsumer(c.consumerCfg)
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- consumer.Run(ctx)
	}()

	select {
	case <-consumer.Running():
	case err := <-errCh:
		_ = consumer.Close() //nolint:errcheck // already failing
		return fmt.Errorf("consumer stopped during startup: %w", err)
	case <-ctx.Done():
		_ = consumer.Close() //nolint:errcheck // shutting down
		return fmt.Errorf("context canceled while starting consumer: %w", ctx.Err())
	}

	c.mu.Lock()
	c.consumer = consumer
	c.consumerErr = errCh
	c.running = true
	c.mu.Unlock()

	logging.Info().Msg("Activity consumer started")
	return nil
}

// Shutdown stops the consumer. The outbox and publisher stay open until
// Close so in-flight requests can still record activity.
func (c *EventsComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}

	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	consumer, errCh := c.consumer, c.consumerErr
	c.consumer, c.consumerErr = nil, nil
	c.running = false
	c.mu.Unlock()

	if err := consumer.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing activity consumer")
	}
	select {
	case <-errCh:
	case <-ctx.Done():
		logging.Warn().Msg("Activity consumer did not stop before shutdown timeout")
	}
	logging.Info().Msg("Activity consumer stopped")
}

// IsRunning reports whether the consumer is active.
func (c *EventsComponents) IsRunning() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Close releases everything InitEvents opened, in reverse order:
// publisher, outbox, connection, then the embedded server.
func (c *EventsComponents) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing publisher")
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing outbox")
		}
	}
	if c.natsConn != nil {
		c.natsConn.Close()
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down NATS server")
		}
		logging.Info().Msg("Embedded NATS server stopped")
	}
}
