// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/murmur/internal/models"
)

const postColumns = `p.post_id, p.post_author, p.post_type, p.post_title, p.post_body,
	p.post_like_count, p.post_comment_count, p.post_date_created,
	p.post_modified_time, p.post_edited_flag`

// feedOrder is the stable order of every post listing.
const feedOrder = `ORDER BY p.post_modified_time DESC, p.post_id DESC`

// hotWindow bounds SORT_HOT results to recently modified posts.
const hotWindow = 24 * time.Hour

// PostSearch filters SearchPosts. Zero values mean "any".
type PostSearch struct {
	Sort   models.SortType
	Type   models.PostType
	Tags   []string
	Limit  int
	Offset int
}

// CreatePost inserts a post and its tags and returns the new id. Timestamps
// default to now.
func (db *DB) CreatePost(ctx context.Context, p *models.Post) (int64, error) {
	now := db.now()
	if p.DateCreated.IsZero() {
		p.DateCreated = now
	}
	if p.ModifiedTime.IsZero() {
		p.ModifiedTime = p.DateCreated
	}

	var id int64
	err := db.runInTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, `INSERT INTO posts
			(post_author, post_type, post_title, post_body, post_date_created, post_modified_time)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING post_id`,
			p.Author, string(p.Type), p.Title, p.Body, p.DateCreated, p.ModifiedTime).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		return insertTags(ctx, tx, id, p.Tags)
	})
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func insertTags(ctx context.Context, tx *sqlx.Tx, postID int64, tags []string) error {
	for i, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag, position) VALUES (?, ?, ?)`,
			postID, tag, i); err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// GetPost loads one post with its tags.
func (db *DB) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := db.x.GetContext(ctx, &p, `SELECT `+postColumns+` FROM posts p WHERE p.post_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFound("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	posts := []models.Post{p}
	if err := db.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// UpdatePost replaces a post's title, body and tags, marks it edited and
// refreshes its modified time.
func (db *DB) UpdatePost(ctx context.Context, id int64, title, body string, tags []string) error {
	return db.runInTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE posts
			SET post_title = ?, post_body = ?, post_modified_time = ?, post_edited_flag = TRUE
			WHERE post_id = ?`, title, body, db.now(), id)
		if err != nil {
			return fmt.Errorf("failed to update post %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		} else if n == 0 {
			return models.NewNotFound("post", id)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear tags of post %d: %w", id, err)
		}
		return insertTags(ctx, tx, id, tags)
	})
}

// DeletePost removes a post together with its tags, likes, comments and
// comment likes.
func (db *DB) DeletePost(ctx context.Context, id int64) error {
	return db.runInTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = ?)`, id); err != nil {
			return fmt.Errorf("failed to check post %d: %w", id, err)
		}
		if !exists {
			return models.NewNotFound("post", id)
		}

		steps := []struct {
			what  string
			query string
		}{
			{"comment likes", `DELETE FROM comment_likes WHERE comment_id IN (
				SELECT comment_id FROM comments WHERE comment_parent_post = ?)`},
			{"comments", `DELETE FROM comments WHERE comment_parent_post = ?`},
			{"post likes", `DELETE FROM post_likes WHERE post_id = ?`},
			{"tags", `DELETE FROM post_tags WHERE post_id = ?`},
			{"post", `DELETE FROM posts WHERE post_id = ?`},
		}
		for _, s := range steps {
			if _, err := tx.ExecContext(ctx, s.query, id); err != nil {
				return fmt.Errorf("failed to delete %s of post %d: %w", s.what, id, err)
			}
		}
		return nil
	})
}

// GlobalPosts pages through every post.
func (db *DB) GlobalPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return db.selectPosts(ctx, `SELECT `+postColumns+` FROM posts p `+feedOrder+` LIMIT ? OFFSET ?`,
		limit, offset)
}

// FollowedPosts pages through posts by accounts viewer follows.
func (db *DB) FollowedPosts(ctx context.Context, viewer string, limit, offset int) ([]models.Post, error) {
	return db.selectPosts(ctx, `SELECT `+postColumns+` FROM posts p
		WHERE p.post_author IN (
			SELECT following_username FROM profile_follows WHERE follower_username = ?)
		`+feedOrder+` LIMIT ? OFFSET ?`, viewer, limit, offset)
}

// UnfollowedPosts pages through posts whose author viewer does not follow.
// The viewer's own posts are included.
func (db *DB) UnfollowedPosts(ctx context.Context, viewer string, limit, offset int) ([]models.Post, error) {
	return db.selectPosts(ctx, `SELECT `+postColumns+` FROM posts p
		WHERE p.post_author NOT IN (
			SELECT following_username FROM profile_follows WHERE follower_username = ?)
		`+feedOrder+` LIMIT ? OFFSET ?`, viewer, limit, offset)
}

// PostsByAuthor pages through one account's posts.
func (db *DB) PostsByAuthor(ctx context.Context, author string, limit, offset int) ([]models.Post, error) {
	return db.selectPosts(ctx, `SELECT `+postColumns+` FROM posts p
		WHERE p.post_author = ? `+feedOrder+` LIMIT ? OFFSET ?`, author, limit, offset)
}

// SearchPosts filters posts by tag, type and recency.
//
// SORT_HOT keeps posts modified within the last day, newest first; SORT_NEW
// orders newest first; SORT_TOP orders by like count. A post matches Tags
// when it carries any of them.
func (db *DB) SearchPosts(ctx context.Context, s PostSearch) ([]models.Post, error) {
	var (
		where []string
		args  []interface{}
	)
	if len(s.Tags) > 0 {
		where = append(where, `EXISTS (SELECT 1 FROM post_tags t WHERE t.post_id = p.post_id AND t.tag IN (?))`)
		args = append(args, s.Tags)
	}
	if s.Type != "" {
		where = append(where, `p.post_type = ?`)
		args = append(args, string(s.Type))
	}
	if s.Sort == models.SortHot {
		where = append(where, `p.post_modified_time > ?`)
		args = append(args, db.now().Add(-hotWindow))
	}

	query := `SELECT ` + postColumns + ` FROM posts p`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	switch s.Sort {
	case models.SortTop:
		query += ` ORDER BY p.post_like_count DESC, p.post_id DESC`
	default:
		query += ` ` + feedOrder
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, s.Limit, s.Offset)

	if len(s.Tags) > 0 {
		var err error
		query, args, err = sqlx.In(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to build search query: %w", err)
		}
		query = db.x.Rebind(query)
	}
	return db.selectPosts(ctx, query, args...)
}

func (db *DB) selectPosts(ctx context.Context, query string, args ...interface{}) ([]models.Post, error) {
	posts := []models.Post{}
	if err := db.x.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	if err := db.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// attachTags loads the tags of every post in one query.
func (db *DB) attachTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		posts[i].Tags = []string{}
	}

	query, args, err := sqlx.In(`SELECT post_id, tag FROM post_tags
		WHERE post_id IN (?) ORDER BY post_id, position`, ids)
	if err != nil {
		return fmt.Errorf("failed to build tag lookup: %w", err)
	}
	var rows []struct {
		PostID int64  `db:"post_id"`
		Tag    string `db:"tag"`
	}
	if err := db.x.SelectContext(ctx, &rows, db.x.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	index := make(map[int64]int, len(posts))
	for i := range posts {
		index[posts[i].ID] = i
	}
	for _, r := range rows {
		i := index[r.PostID]
		posts[i].Tags = append(posts[i].Tags, r.Tag)
	}
	return nil
}

// PostAuthor returns the author of a post.
func (db *DB) PostAuthor(ctx context.Context, id int64) (string, error) {
	var author string
	err := db.x.GetContext(ctx, &author, `SELECT post_author FROM posts WHERE post_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.NewNotFound("post", id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get author of post %d: %w", id, err)
	}
	return author, nil
}
