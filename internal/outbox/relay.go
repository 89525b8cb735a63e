// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package outbox

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/murmur/internal/events"
	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/metrics"
)

// Publisher delivers one event to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// RelayConfig tunes the drain loop.
type RelayConfig struct {
	// Interval between drains.
	Interval time.Duration

	// Rate is the publish budget per second. Burst is the bucket size.
	Rate  float64
	Burst int

	// BatchSize caps the entries read per drain.
	BatchSize int

	// MaxAttempts is the failed publishes after which an entry is dropped.
	MaxAttempts int
}

// DefaultRelayConfig returns the relay settings used in production.
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		Interval:    time.Second,
		Rate:        200,
		Burst:       50,
		BatchSize:   500,
		MaxAttempts: 20,
	}
}

// Relay moves outbox entries to the broker. It implements suture.Service.
type Relay struct {
	store     *Store
	publisher Publisher
	limiter   *rate.Limiter
	config    RelayConfig
}

// NewRelay creates a relay. Zero config fields take their defaults.
func NewRelay(store *Store, publisher Publisher, cfg RelayConfig) *Relay {
	def := DefaultRelayConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Rate <= 0 {
		cfg.Rate = def.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		config:    cfg,
	}
}

// Serve drains immediately and then on every tick until ctx is canceled.
func (r *Relay) Serve(ctx context.Context) error {
	logging.Info().
		Dur("interval", r.config.Interval).
		Float64("rate", r.config.Rate).
		Msg("outbox relay started")

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
			logging.Error().Err(err).Msg("outbox drain failed")
		}
		select {
		case <-ctx.Done():
			logging.Info().Int("pending", r.store.Len()).Msg("outbox relay stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (r *Relay) String() string {
	return "outbox-relay"
}

// Drain publishes pending entries in order and returns how many were
// delivered. It stops at the first publish failure so later entries are
// not reordered ahead of it.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	entries, err := r.store.Pending(ctx, r.config.BatchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, entry := range entries {
		if err := r.limiter.Wait(ctx); err != nil {
			return published, err
		}

		pubErr := r.publisher.Publish(ctx, entry.Event)
		metrics.RecordEventPublished(string(entry.Event.Type), pubErr)
		if pubErr == nil {
			if err := r.store.Confirm(ctx, entry.Key); err != nil {
				return published, err
			}
			published++
			continue
		}

		if err := r.store.RecordFailure(ctx, entry, pubErr); err != nil {
			return published, err
		}
		if entry.Attempts >= r.config.MaxAttempts {
			logging.Error().Err(pubErr).
				Str("event_id", entry.Event.ID).
				Str("event_type", string(entry.Event.Type)).
				Int("attempts", entry.Attempts).
				Msg("dropping activity event after repeated publish failures")
			if err := r.store.Confirm(ctx, entry.Key); err != nil {
				return published, err
			}
			continue
		}
		logging.Warn().Err(pubErr).
			Str("event_id", entry.Event.ID).
			Int("attempts", entry.Attempts).
			Msg("activity publish failed, will retry")
		return published, nil
	}

	if published > 0 {
		logging.Debug().Int("published", published).Int("pending", r.store.Len()).Msg("outbox drained")
	}
	return published, nil
}
