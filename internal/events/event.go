// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/metrics"
)

// Type names an activity.
type Type string

// Activity types. The value is also the last segment of the NATS subject.
const (
	PostCreated       Type = "post.created"
	PostUpdated       Type = "post.updated"
	PostDeleted       Type = "post.deleted"
	PostLiked         Type = "post.liked"
	PostUnliked       Type = "post.unliked"
	CommentCreated    Type = "comment.created"
	CommentUpdated    Type = "comment.updated"
	CommentDeleted    Type = "comment.deleted"
	CommentLiked      Type = "comment.liked"
	CommentUnliked    Type = "comment.unliked"
	ProfileFollowed   Type = "profile.followed"
	ProfileUnfollowed Type = "profile.unfollowed"
)

// SubjectPrefix is prepended to the event type to form the publish subject.
const SubjectPrefix = "murmur.activity."

// Event is one committed activity.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Actor      string    `json:"actor"`
	EntityID   int64     `json:"entityId,omitempty"`
	PostID     int64     `json:"postId,omitempty"`
	Target     string    `json:"target,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New returns an event with a fresh id and the current time.
func New(t Type, actor string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
}

// Subject returns the NATS subject the event is published on.
func (e *Event) Subject() string {
	return SubjectPrefix + string(e.Type)
}

// Emitter accepts committed activity for asynchronous delivery.
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// NopEmitter discards events. Used when events are disabled.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(context.Context, Event) error { return nil }

// EmitLogged hands ev to em. Failures are logged and counted but never
// returned: the mutation that produced the event has already committed.
func EmitLogged(ctx context.Context, em Emitter, ev Event) {
	if em == nil {
		return
	}
	err := em.Emit(ctx, ev)
	metrics.RecordEventEmitted(string(ev.Type), err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("event_type", string(ev.Type)).
			Str("event_id", ev.ID).
			Msg("failed to emit activity event")
	}
}
