// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package comments materializes comment trees and applies comment
// mutations.
//
// Trees are expanded level by level from an explicit worklist, so depth is
// bounded by memory rather than by the goroutine stack. The reply fetches of
// one level run concurrently, bounded by the configured parallelism; the
// like state of a level is resolved with one batched lookup.
package comments

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/murmur/internal/metrics"
	"github.com/tomtom215/murmur/internal/models"
)

// DefaultPageSize is the number of root comments per page.
const DefaultPageSize = 10

// DefaultParallelism bounds concurrent reply fetches per tree level.
const DefaultParallelism = 8

// TreeStore is the comment storage the builder reads from.
type TreeStore interface {
	PostExists(ctx context.Context, id int64) (bool, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	RootComments(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, error)
	Replies(ctx context.Context, parentID int64) ([]models.Comment, error)
}

// LikeResolver resolves viewer like state for a batch of entities.
type LikeResolver interface {
	LikedSet(ctx context.Context, kind models.EntityKind, ids []int64, viewer *models.Viewer) (map[int64]bool, error)
}

// Builder materializes comment trees. It is safe for concurrent use.
type Builder struct {
	store       TreeStore
	likes       LikeResolver
	pageSize    int
	parallelism int
}

// NewBuilder creates a Builder. Non-positive pageSize or parallelism select
// the defaults.
func NewBuilder(store TreeStore, likes LikeResolver, pageSize, parallelism int) *Builder {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	return &Builder{
		store:       store,
		likes:       likes,
		pageSize:    pageSize,
		parallelism: parallelism,
	}
}

// GetRootPage returns page commentPage (1-based) of the post's root
// comments, each with its complete reply tree.
func (b *Builder) GetRootPage(ctx context.Context, postID int64, viewer *models.Viewer, commentPage int) ([]*models.CommentNode, error) {
	if commentPage < 1 {
		return nil, models.NewValidationError("commentPage")
	}
	exists, err := b.store.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFound("post", postID)
	}

	offset, ok := models.PageOffset(commentPage, b.pageSize)
	if !ok {
		return []*models.CommentNode{}, nil
	}
	rows, err := b.store.RootComments(ctx, postID, b.pageSize, offset)
	if err != nil {
		return nil, err
	}
	roots := make([]*models.CommentNode, len(rows))
	for i := range rows {
		roots[i] = &models.CommentNode{Comment: rows[i]}
	}
	if err := b.expand(ctx, roots, viewer); err != nil {
		return nil, err
	}
	return roots, nil
}

// GetSubtree returns the comment and its complete reply tree.
func (b *Builder) GetSubtree(ctx context.Context, commentID int64, viewer *models.Viewer) (*models.CommentNode, error) {
	c, err := b.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return b.subtree(ctx, c, viewer)
}

// GetSubtreeInPost is GetSubtree for a comment that must belong to postID.
func (b *Builder) GetSubtreeInPost(ctx context.Context, postID, commentID int64, viewer *models.Viewer) (*models.CommentNode, error) {
	c, err := b.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, models.NewValidationError("commentId")
	}
	return b.subtree(ctx, c, viewer)
}

func (b *Builder) subtree(ctx context.Context, c *models.Comment, viewer *models.Viewer) (*models.CommentNode, error) {
	root := &models.CommentNode{Comment: *c}
	if err := b.expand(ctx, []*models.CommentNode{root}, viewer); err != nil {
		return nil, err
	}
	return root, nil
}

// expand fills in like state and children for every node reachable from
// roots.
func (b *Builder) expand(ctx context.Context, roots []*models.CommentNode, viewer *models.Viewer) error {
	start := time.Now()
	nodes := 0

	level := roots
	for len(level) > 0 {
		ids := make([]int64, len(level))
		for i, n := range level {
			ids[i] = n.ID
		}
		liked, err := b.likes.LikedSet(ctx, models.KindComment, ids, viewer)
		if err != nil {
			return fmt.Errorf("resolve comment likes: %w", err)
		}

		// Each slot is written by exactly one goroutine; attaching happens
		// after Wait, in level order, so sibling order never depends on
		// fetch completion order.
		replies := make([][]models.Comment, len(level))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.parallelism)
		for i, n := range level {
			n.LikedByViewer = liked[n.ID]
			g.Go(func() error {
				rows, err := b.store.Replies(gctx, n.ID)
				if err != nil {
					return err
				}
				replies[i] = rows
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		nodes += len(level)
		var next []*models.CommentNode
		for i, n := range level {
			n.Children = make([]*models.CommentNode, len(replies[i]))
			for j := range replies[i] {
				child := &models.CommentNode{Comment: replies[i][j]}
				n.Children[j] = child
				next = append(next, child)
			}
		}
		level = next
	}

	metrics.RecordCommentTree(nodes, time.Since(start))
	return nil
}
