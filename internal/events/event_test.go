// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package events

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/murmur/internal/metrics"
)

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, Event) error { return errors.New("disk full") }

func TestNewEvent(t *testing.T) {
	t.Parallel()

	a := New(CommentCreated, "alice")
	b := New(CommentCreated, "alice")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids not unique: %q %q", a.ID, b.ID)
	}
	if a.OccurredAt.IsZero() || a.OccurredAt.Location().String() != "UTC" {
		t.Errorf("OccurredAt = %v, want UTC now", a.OccurredAt)
	}
	if got := a.Subject(); got != "murmur.activity.comment.created" {
		t.Errorf("Subject() = %q", got)
	}
}

func TestEmitLogged(t *testing.T) {
	before := testutil.ToFloat64(metrics.EventsEmitted.WithLabelValues(string(ProfileFollowed), "failure"))
	EmitLogged(context.Background(), failingEmitter{}, New(ProfileFollowed, "bob"))
	after := testutil.ToFloat64(metrics.EventsEmitted.WithLabelValues(string(ProfileFollowed), "failure"))
	if after != before+1 {
		t.Errorf("failure counter = %v, want %v", after, before+1)
	}

	okBefore := testutil.ToFloat64(metrics.EventsEmitted.WithLabelValues(string(ProfileFollowed), "success"))
	EmitLogged(context.Background(), NopEmitter{}, New(ProfileFollowed, "bob"))
	if got := testutil.ToFloat64(metrics.EventsEmitted.WithLabelValues(string(ProfileFollowed), "success")); got != okBefore+1 {
		t.Errorf("success counter = %v, want %v", got, okBefore+1)
	}

	// A nil emitter is ignored.
	EmitLogged(context.Background(), nil, New(ProfileFollowed, "bob"))
}
