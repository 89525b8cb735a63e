// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package likes answers "has this viewer liked this entity" for posts and
// comments.
package likes

import (
	"context"

	"github.com/tomtom215/murmur/internal/models"
)

// EntityKind selects the post or comment like table.
type EntityKind = models.EntityKind

const (
	KindPost    = models.KindPost
	KindComment = models.KindComment
)

// Store is the storage the annotator reads from.
type Store interface {
	HasLike(ctx context.Context, kind models.EntityKind, id int64, username string) (bool, error)
	LikedIDs(ctx context.Context, kind models.EntityKind, ids []int64, username string) (map[int64]bool, error)
}

// Annotator resolves viewer like state. It never writes.
type Annotator struct {
	store Store
}

// NewAnnotator returns an Annotator over store.
func NewAnnotator(store Store) *Annotator {
	return &Annotator{store: store}
}

// IsLikedBy reports whether viewer has liked the entity. An anonymous
// viewer has liked nothing and costs no query.
func (a *Annotator) IsLikedBy(ctx context.Context, kind EntityKind, id int64, viewer *models.Viewer) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	return a.store.HasLike(ctx, kind, id, viewer.Username)
}

// LikedSet is the batch form of IsLikedBy: the returned set contains exactly
// the ids for which IsLikedBy would answer true.
func (a *Annotator) LikedSet(ctx context.Context, kind EntityKind, ids []int64, viewer *models.Viewer) (map[int64]bool, error) {
	if viewer == nil || len(ids) == 0 {
		return map[int64]bool{}, nil
	}
	return a.store.LikedIDs(ctx, kind, ids, viewer.Username)
}

// AnnotatePosts wraps posts with the viewer's like state.
func (a *Annotator) AnnotatePosts(ctx context.Context, posts []models.Post, viewer *models.Viewer) ([]models.PostView, error) {
	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	liked, err := a.LikedSet(ctx, KindPost, ids, viewer)
	if err != nil {
		return nil, err
	}

	out := make([]models.PostView, len(posts))
	for i := range posts {
		out[i] = models.PostView{Post: posts[i], LikedByViewer: liked[posts[i].ID]}
	}
	return out, nil
}
