// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/murmur/internal/models"
)

// likeSchema names the tables and columns behind one likeable kind.
type likeSchema struct {
	joinTable   string
	idColumn    string
	entityTable string
	countColumn string
}

var likeSchemas = map[models.EntityKind]likeSchema{
	models.KindPost:    {"post_likes", "post_id", "posts", "post_like_count"},
	models.KindComment: {"comment_likes", "comment_id", "comments", "comment_like_count"},
}

func schemaFor(kind models.EntityKind) (likeSchema, error) {
	s, ok := likeSchemas[kind]
	if !ok {
		return likeSchema{}, fmt.Errorf("unknown like kind %d", kind)
	}
	return s, nil
}

// HasLike reports whether username has liked the entity.
func (db *DB) HasLike(ctx context.Context, kind models.EntityKind, id int64, username string) (bool, error) {
	s, err := schemaFor(kind)
	if err != nil {
		return false, err
	}
	liked, err := likeExists(ctx, db.x, s, id, username)
	if err != nil {
		return false, fmt.Errorf("failed to check %s like: %w", kind, err)
	}
	return liked, nil
}

func likeExists(ctx context.Context, q sqlx.QueryerContext, s likeSchema, id int64, username string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ? AND username = ?)`, s.joinTable, s.idColumn),
		id, username)
	return exists, err
}

// LikedIDs returns the subset of ids username has liked.
func (db *DB) LikedIDs(ctx context.Context, kind models.EntityKind, ids []int64, username string) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	s, err := schemaFor(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := sqlx.In(fmt.Sprintf(
		`SELECT %s FROM %s WHERE username = ? AND %s IN (?)`, s.idColumn, s.joinTable, s.idColumn),
		username, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build like lookup: %w", err)
	}
	var liked []int64
	if err := db.x.SelectContext(ctx, &liked, db.x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load %s likes: %w", kind, err)
	}
	for _, id := range liked {
		out[id] = true
	}
	return out, nil
}

// SetLike inserts (like) or removes (!like) the join row and adjusts the
// cached count in one transaction. Liking twice yields ErrAlreadyLiked and
// unliking a non-liked entity ErrNotLiked; neither touches the count.
func (db *DB) SetLike(ctx context.Context, kind models.EntityKind, id int64, username string, like bool) error {
	s, err := schemaFor(kind)
	if err != nil {
		return err
	}

	return db.runInTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, fmt.Sprintf(
			`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)`, s.entityTable, s.idColumn), id); err != nil {
			return fmt.Errorf("failed to check %s %d: %w", kind, id, err)
		}
		if !exists {
			return models.NewNotFound(kind.String(), id)
		}

		liked, err := likeExists(ctx, tx, s, id, username)
		if err != nil {
			return fmt.Errorf("failed to check %s like: %w", kind, err)
		}

		delta := 1
		switch {
		case like && liked:
			return models.ErrAlreadyLiked
		case !like && !liked:
			return models.ErrNotLiked
		case like:
			_, err = tx.ExecContext(ctx, fmt.Sprintf(
				`INSERT INTO %s (%s, username, liked_at) VALUES (?, ?, ?)`, s.joinTable, s.idColumn),
				id, username, db.now())
		default:
			delta = -1
			_, err = tx.ExecContext(ctx, fmt.Sprintf(
				`DELETE FROM %s WHERE %s = ? AND username = ?`, s.joinTable, s.idColumn),
				id, username)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s like: %w", kind, err)
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			`UPDATE %s SET %s = %s + ? WHERE %s = ?`, s.entityTable, s.countColumn, s.countColumn, s.idColumn),
			delta, id); err != nil {
			return fmt.Errorf("failed to update %s like count: %w", kind, err)
		}
		return nil
	})
}

// ListLikes pages through the accounts that liked an entity, oldest first.
func (db *DB) ListLikes(ctx context.Context, kind models.EntityKind, id int64, limit, offset int) ([]models.LikeEntry, error) {
	s, err := schemaFor(kind)
	if err != nil {
		return nil, err
	}
	out := []models.LikeEntry{}
	err = db.x.SelectContext(ctx, &out, fmt.Sprintf(
		`SELECT username, liked_at FROM %s WHERE %s = ? ORDER BY liked_at, username LIMIT ? OFFSET ?`,
		s.joinTable, s.idColumn), id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s likes: %w", kind, err)
	}
	return out, nil
}
