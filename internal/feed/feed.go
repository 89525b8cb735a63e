// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package feed assembles a viewer's home feed.
//
// Anonymous viewers and viewers that follow nobody see every post. Viewers
// that follow someone see their follows' posts; once that supply runs out
// (the requested feed page is empty) the fallback tier pages through posts
// from everyone else. All listings order by modified time, newest first,
// with post id as the tie breaker.
package feed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/murmur/internal/metrics"
	"github.com/tomtom215/murmur/internal/models"
)

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

// Source names.
const (
	SourceGlobal       = "anonymous"
	SourcePersonalized = "personalized"
	SourceFallback     = "fallback"
)

// Store is the post storage the assembler pages through.
type Store interface {
	FollowingCount(ctx context.Context, username string) (int64, error)
	GlobalPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	FollowedPosts(ctx context.Context, viewer string, limit, offset int) ([]models.Post, error)
	UnfollowedPosts(ctx context.Context, viewer string, limit, offset int) ([]models.Post, error)
}

// Annotator attaches viewer like state.
type Annotator interface {
	AnnotatePosts(ctx context.Context, posts []models.Post, viewer *models.Viewer) ([]models.PostView, error)
}

// Recommender samples suggested accounts.
type Recommender interface {
	Sample(ctx context.Context, viewer *models.Viewer) ([]models.Profile, error)
}

// Feed is one assembled feed page.
type Feed struct {
	Posts          []models.PostView
	FallbackActive bool
	Recommended    []models.Profile
}

// PageFunc loads one page of posts for viewer.
type PageFunc func(ctx context.Context, viewer string, limit, offset int) ([]models.Post, error)

// source is one tier of the feed. Sources are consulted in order; a source
// is used when it yields posts or when it is the last one.
type source struct {
	name     string
	page     PageFunc
	fallback bool
}

// Assembler builds feeds. It is safe for concurrent use.
type Assembler struct {
	store       Store
	annotator   Annotator
	recommender Recommender
	pageSize    int
	logger      zerolog.Logger
}

// NewAssembler creates an Assembler. A non-positive pageSize means
// DefaultPageSize.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAssembler(store Store, annotator Annotator, recommender Recommender, pageSize int, logger zerolog.Logger) *Assembler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Assembler{
		store:       store,
		annotator:   annotator,
		recommender: recommender,
		pageSize:    pageSize,
		logger:      logger.With().Str("component", "feed").Logger(),
	}
}

func (a *Assembler) sources(personalized bool) []source {
	if !personalized {
		global := func(ctx context.Context, _ string, limit, offset int) ([]models.Post, error) {
			return a.store.GlobalPosts(ctx, limit, offset)
		}
		return []source{{name: SourceGlobal, page: global}}
	}
	return []source{
		{name: SourcePersonalized, page: a.store.FollowedPosts},
		{name: SourceFallback, page: a.store.UnfollowedPosts, fallback: true},
	}
}

// GetFeed returns feed page feedPage for viewer. fallbackPage pages the
// fallback tier independently and is only read, and only validated, once
// the personalized tier is exhausted. Both pages are 1-based.
func (a *Assembler) GetFeed(ctx context.Context, viewer *models.Viewer, feedPage, fallbackPage int) (*Feed, error) {
	if feedPage < 1 {
		return nil, models.NewValidationError("feedPage")
	}

	personalized := false
	if viewer != nil {
		n, err := a.store.FollowingCount(ctx, viewer.Username)
		if err != nil {
			return nil, fmt.Errorf("count follows: %w", err)
		}
		personalized = n > 0
	}

	feed := &Feed{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profiles, err := a.recommender.Sample(gctx, viewer)
		if err != nil {
			return fmt.Errorf("recommendations: %w", err)
		}
		feed.Recommended = profiles
		return nil
	})
	g.Go(func() error {
		posts, src, err := a.page(gctx, a.sources(personalized), viewer.Name(), feedPage, fallbackPage)
		if err != nil {
			return err
		}
		views, err := a.annotator.AnnotatePosts(gctx, posts, viewer)
		if err != nil {
			return fmt.Errorf("annotate posts: %w", err)
		}
		feed.Posts = views
		feed.FallbackActive = src.fallback
		metrics.RecordFeedPage(src.name)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return feed, nil
}

// page walks sources in order and returns the first non-empty page, or the
// last source's page when all are empty.
func (a *Assembler) page(ctx context.Context, sources []source, viewer string, feedPage, fallbackPage int) ([]models.Post, source, error) {
	var (
		posts []models.Post
		src   source
	)
	for _, src = range sources {
		page := feedPage
		if src.fallback {
			if fallbackPage < 1 {
				return nil, src, models.NewValidationError("fallbackPage")
			}
			page = fallbackPage
		}
		offset, ok := models.PageOffset(page, a.pageSize)
		if !ok {
			posts = []models.Post{}
			a.logger.Debug().Str("source", src.name).Int("page", page).Msg("feed page past last row")
			continue
		}
		var err error
		posts, err = src.page(ctx, viewer, a.pageSize, offset)
		if err != nil {
			return nil, src, fmt.Errorf("%s posts: %w", src.name, err)
		}
		if len(posts) > 0 {
			break
		}
		a.logger.Debug().Str("source", src.name).Int("page", page).Msg("feed source exhausted")
	}
	return posts, src, nil
}
