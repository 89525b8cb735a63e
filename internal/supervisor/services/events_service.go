// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package services

import (
	"context"
	"fmt"
	"time"
)

// EventsRunner is the lifecycle of the activity event components
// (embedded NATS server, publisher and consumer).
type EventsRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
}

// EventsService supervises an EventsRunner: Start, wait for cancellation,
// then Shutdown with a fresh timeout context.
type EventsService struct {
	components      EventsRunner
	shutdownTimeout time.Duration
	name            string
}

// NewEventsService wraps components. A non-positive timeout means 10s.
func NewEventsService(components EventsRunner, shutdownTimeout time.Duration) *EventsService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &EventsService{
		components:      components,
		shutdownTimeout: shutdownTimeout,
		name:            "activity-events",
	}
}

// Serve implements suture.Service. A Start failure is returned so suture
// restarts the service with backoff.
func (s *EventsService) Serve(ctx context.Context) error {
	if err := s.components.Start(ctx); err != nil {
		return fmt.Errorf("activity events start failed: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.components.Shutdown(shutdownCtx)

	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *EventsService) String() string {
	return s.name
}
