// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package profiles serves profile pages and the follow graph.
package profiles

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/murmur/internal/authz"
	"github.com/tomtom215/murmur/internal/events"
	"github.com/tomtom215/murmur/internal/models"
	"github.com/tomtom215/murmur/internal/validation"
)

// DefaultPageSize is the number of entries per profile list page.
const DefaultPageSize = 10

// Store is the profile and follow storage.
type Store interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	UpsertProfileDetails(ctx context.Context, username, profileName, description string) error
	IsFollowing(ctx context.Context, follower, following string) (bool, error)
	Follow(ctx context.Context, follower, target string) error
	Unfollow(ctx context.Context, follower, target string) error
	Followers(ctx context.Context, username string, limit, offset int) ([]models.FollowEntry, error)
	Following(ctx context.Context, username string, limit, offset int) ([]models.FollowEntry, error)
	PostsByAuthor(ctx context.Context, author string, limit, offset int) ([]models.Post, error)
	CommentsByAuthor(ctx context.Context, author string, limit, offset int) ([]models.Comment, error)
}

// Annotator resolves viewer like state for posts.
type Annotator interface {
	AnnotatePosts(ctx context.Context, posts []models.Post, viewer *models.Viewer) ([]models.PostView, error)
}

// Authorizer decides ownership-scoped actions.
type Authorizer interface {
	Authorize(viewer, owner, object, action string) error
}

// View is a profile as seen by a viewer.
type View struct {
	Profile models.Profile

	// FollowingUser is true when the viewer follows the profile.
	FollowingUser bool

	// FollowedByUser is true when the profile follows the viewer.
	FollowedByUser bool
}

// UpdateInput is the editable part of the viewer's own profile.
type UpdateInput struct {
	ProfileName        string `json:"profileName" validate:"notblank,max=64"`
	ProfileDescription string `json:"profileDescription" validate:"max=500"`
}

// Service implements profile operations.
type Service struct {
	store    Store
	likes    Annotator
	authz    Authorizer
	emitter  events.Emitter
	pageSize int
}

// NewService creates a Service. A nil emitter discards events.
func NewService(store Store, likes Annotator, authorizer Authorizer, emitter events.Emitter, pageSize int) *Service {
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{store: store, likes: likes, authz: authorizer, emitter: emitter, pageSize: pageSize}
}

// Get returns username's profile and its relationship to viewer.
func (s *Service) Get(ctx context.Context, username string, viewer *models.Viewer) (*View, error) {
	p, err := s.store.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	v := &View{Profile: *p}
	if viewer == nil || viewer.Username == username {
		return v, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		v.FollowingUser, err = s.store.IsFollowing(gctx, viewer.Username, username)
		return err
	})
	g.Go(func() (err error) {
		v.FollowedByUser, err = s.store.IsFollowing(gctx, username, viewer.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateMe sets the viewer's display name and description. A viewer
// without a profile row gets one.
func (s *Service) UpdateMe(ctx context.Context, viewer string, in UpdateInput) error {
	if err := validation.Validate(&in); err != nil {
		return err
	}
	if err := s.authz.Authorize(viewer, viewer, authz.ObjectProfile, authz.ActionUpdate); err != nil {
		return err
	}
	return s.store.UpsertProfileDetails(ctx, viewer, in.ProfileName, in.ProfileDescription)
}

// offset validates a 1-based page. ok is false for pages past the last
// storable row.
func (s *Service) offset(page int, param string) (off int, ok bool, err error) {
	if page < 1 {
		return 0, false, models.NewValidationError(param)
	}
	off, ok = models.PageOffset(page, s.pageSize)
	return off, ok, nil
}

func (s *Service) mustExist(ctx context.Context, username string) error {
	_, err := s.store.GetProfile(ctx, username)
	return err
}

// Posts returns page postPage of username's posts, newest first.
func (s *Service) Posts(ctx context.Context, username string, viewer *models.Viewer, postPage int) ([]models.PostView, error) {
	off, ok, err := s.offset(postPage, "postPage")
	if err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	if !ok {
		return []models.PostView{}, nil
	}
	posts, err := s.store.PostsByAuthor(ctx, username, s.pageSize, off)
	if err != nil {
		return nil, err
	}
	return s.likes.AnnotatePosts(ctx, posts, viewer)
}

// Comments returns page commentPage of username's comments, newest first.
func (s *Service) Comments(ctx context.Context, username string, commentPage int) ([]models.Comment, error) {
	off, ok, err := s.offset(commentPage, "commentPage")
	if err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	if !ok {
		return []models.Comment{}, nil
	}
	return s.store.CommentsByAuthor(ctx, username, s.pageSize, off)
}

// Followers returns page followerPage of the accounts following username.
func (s *Service) Followers(ctx context.Context, username string, followerPage int) ([]models.FollowEntry, error) {
	off, ok, err := s.offset(followerPage, "followerPage")
	if err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	if !ok {
		return []models.FollowEntry{}, nil
	}
	return s.store.Followers(ctx, username, s.pageSize, off)
}

// Following returns page followingPage of the accounts username follows.
func (s *Service) Following(ctx context.Context, username string, followingPage int) ([]models.FollowEntry, error) {
	off, ok, err := s.offset(followingPage, "followingPage")
	if err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	if !ok {
		return []models.FollowEntry{}, nil
	}
	return s.store.Following(ctx, username, s.pageSize, off)
}

// Follow makes viewer follow target.
func (s *Service) Follow(ctx context.Context, viewer, target string) error {
	if err := s.authz.Authorize(viewer, target, authz.ObjectProfile, authz.ActionFollow); err != nil {
		return err
	}
	if err := s.store.Follow(ctx, viewer, target); err != nil {
		return err
	}
	ev := events.New(events.ProfileFollowed, viewer)
	ev.Target = target
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}

// Unfollow removes viewer's follow of target.
func (s *Service) Unfollow(ctx context.Context, viewer, target string) error {
	if err := s.authz.Authorize(viewer, target, authz.ObjectProfile, authz.ActionFollow); err != nil {
		return err
	}
	if err := s.store.Unfollow(ctx, viewer, target); err != nil {
		return err
	}
	ev := events.New(events.ProfileUnfollowed, viewer)
	ev.Target = target
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}
