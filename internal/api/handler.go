// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/murmur/internal/comments"
	"github.com/tomtom215/murmur/internal/feed"
	"github.com/tomtom215/murmur/internal/models"
	"github.com/tomtom215/murmur/internal/posts"
	"github.com/tomtom215/murmur/internal/profiles"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// FeedService assembles feed pages.
type FeedService interface {
	GetFeed(ctx context.Context, viewer *models.Viewer, feedPage, fallbackPage int) (*feed.Feed, error)
}

// CommentTreeService reads expanded comment trees.
type CommentTreeService interface {
	GetRootPage(ctx context.Context, postID int64, viewer *models.Viewer, commentPage int) ([]*models.CommentNode, error)
	GetSubtree(ctx context.Context, commentID int64, viewer *models.Viewer) (*models.CommentNode, error)
	GetSubtreeInPost(ctx context.Context, postID, commentID int64, viewer *models.Viewer) (*models.CommentNode, error)
}

// CommentService applies comment mutations.
type CommentService interface {
	Create(ctx context.Context, in comments.CreateInput) (postID, commentID int64, err error)
	Update(ctx context.Context, commentID int64, author string, in comments.UpdateInput) error
	Delete(ctx context.Context, commentID int64, author string) (int64, error)
	ToggleLike(ctx context.Context, commentID int64, viewer string, like bool) error
}

// PostService implements post operations.
type PostService interface {
	Create(ctx context.Context, author string, in posts.Input) (int64, error)
	Get(ctx context.Context, id int64, viewer *models.Viewer) (*models.PostView, error)
	Update(ctx context.Context, id int64, author string, in posts.Input) error
	Delete(ctx context.Context, id int64, author string) error
	ToggleLike(ctx context.Context, id int64, viewer string, like bool) error
	ListLikes(ctx context.Context, id int64, likePage int) ([]models.LikeEntry, error)
	LikeStatus(ctx context.Context, id int64, username string) (bool, error)
	Search(ctx context.Context, in posts.SearchInput, viewer *models.Viewer) ([]models.PostView, error)
}

// ProfileService implements profile and follow operations.
type ProfileService interface {
	Get(ctx context.Context, username string, viewer *models.Viewer) (*profiles.View, error)
	UpdateMe(ctx context.Context, viewer string, in profiles.UpdateInput) error
	Posts(ctx context.Context, username string, viewer *models.Viewer, postPage int) ([]models.PostView, error)
	Comments(ctx context.Context, username string, commentPage int) ([]models.Comment, error)
	Followers(ctx context.Context, username string, followerPage int) ([]models.FollowEntry, error)
	Following(ctx context.Context, username string, followingPage int) ([]models.FollowEntry, error)
	Follow(ctx context.Context, viewer, target string) error
	Unfollow(ctx context.Context, viewer, target string) error
}

// AccountStore is the storage the transport layer consults directly.
type AccountStore interface {
	Ping(ctx context.Context) error
	IsAccountActive(ctx context.Context, username string) (bool, error)
}

// Services groups the handler dependencies.
type Services struct {
	Feed     FeedService
	Trees    CommentTreeService
	Comments CommentService
	Posts    PostService
	Profiles ProfileService
	Accounts AccountStore
}

// Handler serves the Murmur API.
type Handler struct {
	feed     FeedService
	trees    CommentTreeService
	comments CommentService
	posts    PostService
	profiles ProfileService
	accounts AccountStore
	now      func() time.Time
}

// NewHandler creates a Handler over the given services.
func NewHandler(svc Services) *Handler {
	return &Handler{
		feed:     svc.Feed,
		trees:    svc.Trees,
		comments: svc.Comments,
		posts:    svc.Posts,
		profiles: svc.Profiles,
		accounts: svc.Accounts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// intParam reads an integer from the query string. Absent or empty means
// def.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError(name)
	}
	return n, nil
}

// pageParam reads a 1-based page number from the query string. Absent or
// empty means 1.
func pageParam(r *http.Request, name string) (int, error) {
	n, err := intParam(r, name, 1)
	if err != nil || n < 1 {
		return 0, models.NewValidationError(name)
	}
	return n, nil
}

// idParam reads a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, models.NewValidationError(name)
	}
	return id, nil
}

// decodeBody decodes a JSON request body into dst. An empty body leaves
// dst untouched so the service reports the missing properties.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return models.NewValidationError("requestBody")
	}
	return nil
}
