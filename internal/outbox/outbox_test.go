// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/murmur/internal/events"
)

type fakePublisher struct {
	mu       sync.Mutex
	got      []events.Event
	failNext int
}

func (f *fakePublisher) Publish(_ context.Context, ev events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext > 0 {
		f.failNext--
		return errors.New("broker unavailable")
	}
	f.got = append(f.got, ev)
	return nil
}

func (f *fakePublisher) published() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.got...)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func emitN(t *testing.T, s *Store, n int) []events.Event {
	t.Helper()
	var out []events.Event
	for i := 0; i < n; i++ {
		ev := events.New(events.PostCreated, "alice")
		ev.EntityID = int64(i + 1)
		if err := s.Emit(context.Background(), ev); err != nil {
			t.Fatalf("Emit() error = %v", err)
		}
		out = append(out, ev)
	}
	return out
}

func TestStoreKeepsWriteOrder(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	want := emitN(t, s, 5)

	entries, err := s.Pending(context.Background(), 0)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(entries) != len(want) {
		t.Fatalf("Pending() = %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Event.ID != want[i].ID {
			t.Errorf("entry %d = %s, want %s", i, e.Event.ID, want[i].ID)
		}
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}

	limited, err := s.Pending(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("Pending(2) = %d entries", len(limited))
	}
}

func TestStoreConfirmAndReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	emitN(t, s, 3)

	entries, err := s.Pending(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Confirm(context.Background(), entries[0].Key); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	// A second confirm of the same key is a no-op.
	if err := s.Confirm(context.Background(), entries[0].Key); err != nil {
		t.Fatalf("Confirm() twice error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if reopened.Len() != 2 {
		t.Errorf("reopened Len() = %d, want 2", reopened.Len())
	}
}

func TestStoreClosed(t *testing.T) {
	t.Parallel()
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Emit(context.Background(), events.New(events.PostLiked, "bob")); !errors.Is(err, ErrClosed) {
		t.Errorf("Emit() after Close = %v, want ErrClosed", err)
	}
	if _, err := s.Pending(context.Background(), 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Pending() after Close = %v, want ErrClosed", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{}); err == nil {
		t.Error("Open() with no path should fail")
	}
}

func TestRelayDrainPublishesInOrder(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	want := emitN(t, s, 4)
	pub := &fakePublisher{}
	relay := NewRelay(s, pub, RelayConfig{Rate: 1000, Burst: 10})

	n, err := relay.Drain(context.Background())
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if n != 4 {
		t.Errorf("Drain() = %d, want 4", n)
	}
	got := pub.published()
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("published[%d] = %s, want %s", i, got[i].ID, want[i].ID)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", s.Len())
	}
}

func TestRelayStopsAtFailure(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	emitN(t, s, 3)
	pub := &fakePublisher{failNext: 1}
	relay := NewRelay(s, pub, RelayConfig{Rate: 1000, Burst: 10, MaxAttempts: 5})

	n, err := relay.Drain(context.Background())
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Drain() = %d, want 0 after first failure", n)
	}
	entries, err := s.Pending(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Attempts != 1 || entries[0].LastError == "" {
		t.Fatalf("entries after failure = %+v", entries)
	}

	n, err = relay.Drain(context.Background())
	if err != nil || n != 3 {
		t.Errorf("second Drain() = %d, %v; want 3, nil", n, err)
	}
}

func TestRelayDropsAfterMaxAttempts(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	emitN(t, s, 2)
	pub := &fakePublisher{failNext: 2}
	relay := NewRelay(s, pub, RelayConfig{Rate: 1000, Burst: 10, MaxAttempts: 1})

	n, err := relay.Drain(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || s.Len() != 0 {
		t.Errorf("Drain() = %d, Len() = %d; want both dropped", n, s.Len())
	}
}

func TestRelayServeStopsOnCancel(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	emitN(t, s, 2)
	pub := &fakePublisher{}
	relay := NewRelay(s, pub, RelayConfig{Interval: 10 * time.Millisecond, Rate: 1000, Burst: 10})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for len(pub.published()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if len(pub.published()) != 2 {
		t.Errorf("published %d events, want 2", len(pub.published()))
	}
	if relay.String() != "outbox-relay" {
		t.Errorf("String() = %q", relay.String())
	}
}
