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

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/murmur/internal/models"
)

const commentColumns = `comment_id, comment_author, comment_parent_post, comment_type,
	comment_body, comment_reply_parent, comment_like_count, comment_reply_count,
	comment_date_created, comment_modified_time, comment_edited_flag`

// threadOrder orders siblings in a comment tree.
const threadOrder = `ORDER BY comment_date_created ASC, comment_id ASC`

// PostExists reports whether a post with id exists.
func (db *DB) PostExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := db.x.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = ?)`, id); err != nil {
		return false, fmt.Errorf("failed to check post %d: %w", id, err)
	}
	return exists, nil
}

// GetComment loads one comment.
func (db *DB) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := db.x.GetContext(ctx, &c, `SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFound("comment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	return &c, nil
}

// RootComments pages through the ROOT comments of a post, oldest first.
func (db *DB) RootComments(ctx context.Context, postID int64, limit, offset int) ([]models.Comment, error) {
	out := []models.Comment{}
	err := db.x.SelectContext(ctx, &out, `SELECT `+commentColumns+` FROM comments
		WHERE comment_parent_post = ? AND comment_type = 'ROOT'
		`+threadOrder+` LIMIT ? OFFSET ?`, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list root comments of post %d: %w", postID, err)
	}
	return out, nil
}

// Replies lists the direct replies to a comment, oldest first.
func (db *DB) Replies(ctx context.Context, parentID int64) ([]models.Comment, error) {
	out := []models.Comment{}
	err := db.x.SelectContext(ctx, &out, `SELECT `+commentColumns+` FROM comments
		WHERE comment_reply_parent = ? `+threadOrder, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies to comment %d: %w", parentID, err)
	}
	return out, nil
}

// CommentsByAuthor pages through one account's comments, newest first.
func (db *DB) CommentsByAuthor(ctx context.Context, author string, limit, offset int) ([]models.Comment, error) {
	out := []models.Comment{}
	err := db.x.SelectContext(ctx, &out, `SELECT `+commentColumns+` FROM comments
		WHERE comment_author = ?
		ORDER BY comment_date_created DESC, comment_id DESC
		LIMIT ? OFFSET ?`, author, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of %s: %w", author, err)
	}
	return out, nil
}

// CreateComment inserts a comment and bumps the counters it affects in one
// transaction: the parent's reply count for a REPLY and the post's comment
// count. afterInsert, when non-nil, runs between the insert and the counter
// updates; an error from it rolls everything back.
func (db *DB) CreateComment(ctx context.Context, c *models.Comment, afterInsert func() error) (int64, error) {
	if c.DateCreated.IsZero() {
		c.DateCreated = db.now()
	}
	if c.ModifiedTime.IsZero() {
		c.ModifiedTime = c.DateCreated
	}

	var id int64
	err := db.runInTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = ?)`, c.PostID); err != nil {
			return fmt.Errorf("failed to check post %d: %w", c.PostID, err)
		}
		if !exists {
			return models.NewNotFound("post", c.PostID)
		}

		var parent interface{}
		if c.Type == models.CommentReply {
			if c.ParentID == nil {
				return models.NewValidationError("commentParent")
			}
			var parentPost int64
			err := tx.GetContext(ctx, &parentPost,
				`SELECT comment_parent_post FROM comments WHERE comment_id = ?`, *c.ParentID)
			if errors.Is(err, sql.ErrNoRows) || (err == nil && parentPost != c.PostID) {
				return models.NewValidationError("commentParent")
			}
			if err != nil {
				return fmt.Errorf("failed to load parent comment %d: %w", *c.ParentID, err)
			}
			parent = *c.ParentID
		}

		if err := tx.QueryRowxContext(ctx, `INSERT INTO comments
			(comment_author, comment_parent_post, comment_type, comment_body, comment_reply_parent,
			 comment_date_created, comment_modified_time)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING comment_id`,
			c.Author, c.PostID, string(c.Type), c.Body, parent, c.DateCreated, c.ModifiedTime).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}

		if afterInsert != nil {
			if err := afterInsert(); err != nil {
				return err
			}
		}

		if parent != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE comments
				SET comment_reply_count = comment_reply_count + 1 WHERE comment_id = ?`, parent); err != nil {
				return fmt.Errorf("failed to update reply count: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE posts
			SET post_comment_count = post_comment_count + 1 WHERE post_id = ?`, c.PostID); err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

// UpdateCommentBody replaces a comment's body, marks it edited and refreshes
// its modified time.
func (db *DB) UpdateCommentBody(ctx context.Context, id int64, body string) error {
	return db.runInTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE comments
			SET comment_body = ?, comment_modified_time = ?, comment_edited_flag = TRUE
			WHERE comment_id = ?`, body, db.now(), id)
		if err != nil {
			return fmt.Errorf("failed to update comment %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return models.NewNotFound("comment", id)
		}
		return nil
	})
}

// DeleteComment removes a comment, its whole reply subtree and their likes,
// and decrements the post's comment count and the parent's reply count. It
// returns the number of comments removed.
func (db *DB) DeleteComment(ctx context.Context, id int64) (int64, error) {
	var removed int64
	err := db.runInTx(ctx, func(tx *sqlx.Tx) error {
		var c models.Comment
		err := tx.GetContext(ctx, &c, `SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewNotFound("comment", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get comment %d: %w", id, err)
		}

		ids, err := collectSubtree(ctx, tx, id)
		if err != nil {
			return err
		}

		for _, q := range []string{
			`DELETE FROM comment_likes WHERE comment_id IN (?)`,
			`DELETE FROM comments WHERE comment_id IN (?)`,
		} {
			query, args, err := sqlx.In(q, ids)
			if err != nil {
				return fmt.Errorf("failed to build delete: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("failed to delete comment subtree %d: %w", id, err)
			}
		}

		removed = int64(len(ids))
		if _, err := tx.ExecContext(ctx, `UPDATE posts
			SET post_comment_count = post_comment_count - ? WHERE post_id = ?`, removed, c.PostID); err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}
		if c.ParentID != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE comments
				SET comment_reply_count = comment_reply_count - 1 WHERE comment_id = ?`, *c.ParentID); err != nil {
				return fmt.Errorf("failed to update reply count: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// collectSubtree returns id and every transitive reply id, walking one level
// per query.
func collectSubtree(ctx context.Context, tx *sqlx.Tx, id int64) ([]int64, error) {
	all := []int64{id}
	frontier := []int64{id}
	for len(frontier) > 0 {
		query, args, err := sqlx.In(`SELECT comment_id FROM comments WHERE comment_reply_parent IN (?)`, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to build subtree query: %w", err)
		}
		var next []int64
		if err := tx.SelectContext(ctx, &next, tx.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("failed to walk replies: %w", err)
		}
		all = append(all, next...)
		frontier = next
	}
	return all, nil
}
