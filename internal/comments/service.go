// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package comments

import (
	"context"

	"github.com/tomtom215/murmur/internal/authz"
	"github.com/tomtom215/murmur/internal/events"
	"github.com/tomtom215/murmur/internal/models"
	"github.com/tomtom215/murmur/internal/validation"
)

// MutationStore is the comment storage the service writes through. Each
// method is one transaction.
type MutationStore interface {
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment, afterInsert func() error) (int64, error)
	UpdateCommentBody(ctx context.Context, id int64, body string) error
	DeleteComment(ctx context.Context, id int64) (int64, error)
	SetLike(ctx context.Context, kind models.EntityKind, id int64, username string, like bool) error
}

// Authorizer decides ownership-scoped actions.
type Authorizer interface {
	Authorize(viewer, owner, object, action string) error
}

// CreateInput is a new comment. ParentID is required for REPLY and ignored
// for ROOT.
type CreateInput struct {
	PostID   int64              `json:"postId"`
	Author   string             `json:"-"`
	Body     string             `json:"commentBody" validate:"notblank"`
	Type     models.CommentType `json:"commentType" validate:"commenttype"`
	ParentID *int64             `json:"commentParent"`
}

// UpdateInput is a comment edit.
type UpdateInput struct {
	Body string `json:"commentBody" validate:"notblank"`
}

// Service applies comment mutations.
type Service struct {
	store   MutationStore
	authz   Authorizer
	emitter events.Emitter

	// failAfterInsert runs between the insert and the counter updates of
	// Create. Tests set it to force a rollback.
	failAfterInsert func() error
}

// NewService creates a Service. A nil emitter discards events.
func NewService(store MutationStore, authorizer Authorizer, emitter events.Emitter) *Service {
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	return &Service{store: store, authz: authorizer, emitter: emitter}
}

// Create stores a comment and returns its post id and new comment id.
func (s *Service) Create(ctx context.Context, in CreateInput) (postID, commentID int64, err error) {
	if err := validation.Validate(&in); err != nil {
		return 0, 0, err
	}
	if in.Type == models.CommentReply && in.ParentID == nil {
		return 0, 0, models.NewValidationError("commentParent")
	}
	if err := s.authz.Authorize(in.Author, "", authz.ObjectComment, authz.ActionCreate); err != nil {
		return 0, 0, err
	}

	c := &models.Comment{
		Author: in.Author,
		PostID: in.PostID,
		Type:   in.Type,
		Body:   in.Body,
	}
	if in.Type == models.CommentReply {
		c.ParentID = in.ParentID
	}

	id, err := s.store.CreateComment(ctx, c, s.failAfterInsert)
	if err != nil {
		return 0, 0, err
	}

	ev := events.New(events.CommentCreated, in.Author)
	ev.EntityID = id
	ev.PostID = in.PostID
	events.EmitLogged(ctx, s.emitter, ev)
	return in.PostID, id, nil
}

// Update replaces the body of a comment owned by author.
func (s *Service) Update(ctx context.Context, commentID int64, author string, in UpdateInput) error {
	if err := validation.Validate(&in); err != nil {
		return err
	}
	c, err := s.owned(ctx, commentID, author, authz.ActionUpdate)
	if err != nil {
		return err
	}
	if err := s.store.UpdateCommentBody(ctx, commentID, in.Body); err != nil {
		return err
	}

	ev := events.New(events.CommentUpdated, author)
	ev.EntityID = commentID
	ev.PostID = c.PostID
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}

// Delete removes a comment owned by author together with its replies. It
// returns the number of comments removed.
func (s *Service) Delete(ctx context.Context, commentID int64, author string) (int64, error) {
	c, err := s.owned(ctx, commentID, author, authz.ActionDelete)
	if err != nil {
		return 0, err
	}
	removed, err := s.store.DeleteComment(ctx, commentID)
	if err != nil {
		return 0, err
	}

	ev := events.New(events.CommentDeleted, author)
	ev.EntityID = commentID
	ev.PostID = c.PostID
	events.EmitLogged(ctx, s.emitter, ev)
	return removed, nil
}

// ToggleLike likes (like=true) or unlikes a comment for viewer.
func (s *Service) ToggleLike(ctx context.Context, commentID int64, viewer string, like bool) error {
	if err := s.authz.Authorize(viewer, "", authz.ObjectComment, authz.ActionLike); err != nil {
		return err
	}
	if err := s.store.SetLike(ctx, models.KindComment, commentID, viewer, like); err != nil {
		return err
	}

	t := events.CommentLiked
	if !like {
		t = events.CommentUnliked
	}
	ev := events.New(t, viewer)
	ev.EntityID = commentID
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}

func (s *Service) owned(ctx context.Context, commentID int64, viewer, action string) (*models.Comment, error) {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(viewer, c.Author, authz.ObjectComment, action); err != nil {
		return nil, err
	}
	return c, nil
}
