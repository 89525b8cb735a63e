// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type mockEventsRunner struct {
	running  atomic.Bool
	started  atomic.Bool
	startErr error
}

func (m *mockEventsRunner) Start(context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started.Store(true)
	m.running.Store(true)
	return nil
}

func (m *mockEventsRunner) Shutdown(context.Context) {
	m.running.Store(false)
}

func TestEventsService(t *testing.T) {
	t.Run("implements suture.Service interface", func(t *testing.T) {
		var _ suture.Service = (*EventsService)(nil)
	})

	t.Run("starts and stops components", func(t *testing.T) {
		mock := &mockEventsRunner{}
		svc := NewEventsService(mock, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- svc.Serve(ctx)
		}()

		for i := 0; i < 50 && !mock.started.Load(); i++ {
			time.Sleep(10 * time.Millisecond)
		}
		if !mock.running.Load() {
			t.Fatal("components should be running")
		}
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("service did not stop in time")
		}
		if mock.running.Load() {
			t.Error("components should have been shut down")
		}
	})

	t.Run("propagates start error for restart", func(t *testing.T) {
		mock := &mockEventsRunner{startErr: errors.New("nats: no servers available")}
		svc := NewEventsService(mock, 0)

		err := svc.Serve(context.Background())
		if !errors.Is(err, mock.startErr) {
			t.Errorf("Serve() = %v, want wrapped start error", err)
		}
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("default timeout = %v", svc.shutdownTimeout)
		}
	})

	t.Run("String returns service name", func(t *testing.T) {
		if got := NewEventsService(&mockEventsRunner{}, 0).String(); got != "activity-events" {
			t.Errorf("String() = %q", got)
		}
	})
}
