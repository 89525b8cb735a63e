// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package events

import (
	"context"
	"fmt"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/metrics"
)

// ConsumerConfig configures the durable activity consumer.
type ConsumerConfig struct {
	URL              string
	StreamName       string
	DurableName      string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	CloseTimeout     time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
}

// DefaultConsumerConfig returns consumer settings bound to stream.
func DefaultConsumerConfig(url, stream string) ConsumerConfig {
	return ConsumerConfig{
		URL:                  url,
		StreamName:           stream,
		DurableName:          "murmur-activity",
		SubscribersCount:     1,
		AckWaitTimeout:       30 * time.Second,
		MaxDeliver:           5,
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 500 * time.Millisecond,
	}
}

// Consumer reads the activity stream through a watermill router and
// counts what it sees per event type.
type Consumer struct {
	router     *message.Router
	subscriber message.Subscriber
}

// NewConsumer builds the subscriber and router. Call Run to start consuming.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	logger := WatermillLogger()

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.DurableName,
		SubscribersCount: cfg.SubscribersCount,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      []natsgo.Option{natsgo.RetryOnFailedConnect(true)},
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			AckAsync:      false,
			DurablePrefix: cfg.DurableName,
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.MaxDeliver(cfg.MaxDeliver),
				natsgo.AckWait(cfg.AckWaitTimeout),
				natsgo.DeliverNew(),
				natsgo.BindStream(cfg.StreamName),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		_ = sub.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     10 * cfg.RetryInitialInterval,
		Multiplier:      2.0,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddConsumerHandler("activity-counter", SubjectPrefix+">", sub, handleActivity)

	return &Consumer{router: router, subscriber: sub}, nil
}

// Run blocks until ctx is canceled or the router stops.
func (c *Consumer) Run(ctx context.Context) error {
	return c.router.Run(ctx)
}

// Running is closed once handlers are subscribed.
func (c *Consumer) Running() <-chan struct{} {
	return c.router.Running()
}

// Close stops the router and the subscriber.
func (c *Consumer) Close() error {
	if err := c.router.Close(); err != nil {
		return err
	}
	return c.subscriber.Close()
}

// handleActivity counts one activity message. Malformed payloads are logged
// and acked.
func handleActivity(msg *message.Message) error {
	var ev Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		logging.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("dropping malformed activity message")
		return nil
	}
	metrics.RecordEventConsumed(string(ev.Type))
	logging.Debug().
		Str("event_type", string(ev.Type)).
		Str("actor", ev.Actor).
		Str("event_id", ev.ID).
		Msg("activity consumed")
	return nil
}
