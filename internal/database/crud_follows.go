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

// FollowingCount counts the follow edges leaving username.
func (db *DB) FollowingCount(ctx context.Context, username string) (int64, error) {
	var n int64
	if err := db.x.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM profile_follows WHERE follower_username = ?`, username); err != nil {
		return 0, fmt.Errorf("failed to count follows of %s: %w", username, err)
	}
	return n, nil
}

// IsFollowing reports whether follower follows following.
func (db *DB) IsFollowing(ctx context.Context, follower, following string) (bool, error) {
	ok, err := followExists(ctx, db.x, follower, following)
	if err != nil {
		return false, fmt.Errorf("failed to check follow %s -> %s: %w", follower, following, err)
	}
	return ok, nil
}

func followExists(ctx context.Context, q sqlx.QueryerContext, follower, following string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, `SELECT EXISTS (
		SELECT 1 FROM profile_follows WHERE follower_username = ? AND following_username = ?)`,
		follower, following)
	return exists, err
}

// Follow adds the edge follower -> target and bumps both counters.
func (db *DB) Follow(ctx context.Context, follower, target string) error {
	if follower == target {
		return models.ErrSelfFollow
	}
	return db.runInTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := profileExists(ctx, tx, target)
		if err != nil {
			return fmt.Errorf("failed to check profile %s: %w", target, err)
		}
		if !exists {
			return models.NewNotFound("profile", target)
		}

		following, err := followExists(ctx, tx, follower, target)
		if err != nil {
			return fmt.Errorf("failed to check follow: %w", err)
		}
		if following {
			return models.ErrAlreadyFollowed
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO profile_follows
			(follower_username, following_username, follow_since) VALUES (?, ?, ?)`,
			follower, target, db.now()); err != nil {
			return fmt.Errorf("failed to insert follow: %w", err)
		}
		return adjustFollowCounts(ctx, tx, follower, target, 1)
	})
}

// Unfollow removes the edge follower -> target and decrements both counters.
func (db *DB) Unfollow(ctx context.Context, follower, target string) error {
	if follower == target {
		return models.ErrSelfFollow
	}
	return db.runInTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := profileExists(ctx, tx, target)
		if err != nil {
			return fmt.Errorf("failed to check profile %s: %w", target, err)
		}
		if !exists {
			return models.NewNotFound("profile", target)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM profile_follows
			WHERE follower_username = ? AND following_username = ?`, follower, target)
		if err != nil {
			return fmt.Errorf("failed to delete follow: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return models.ErrNotFollowed
		}
		return adjustFollowCounts(ctx, tx, follower, target, -1)
	})
}

func adjustFollowCounts(ctx context.Context, tx *sqlx.Tx, follower, target string, delta int) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET following_count = following_count + ? WHERE username = ?`,
		delta, follower); err != nil {
		return fmt.Errorf("failed to update following count: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET follower_count = follower_count + ? WHERE username = ?`,
		delta, target); err != nil {
		return fmt.Errorf("failed to update follower count: %w", err)
	}
	return nil
}

// Followers lists accounts following username, newest edge first.
func (db *DB) Followers(ctx context.Context, username string, limit, offset int) ([]models.FollowEntry, error) {
	var out []models.FollowEntry
	err := db.x.SelectContext(ctx, &out, `SELECT follower_username AS username, follow_since
		FROM profile_follows WHERE following_username = ?
		ORDER BY follow_since DESC, follower_username
		LIMIT ? OFFSET ?`, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers of %s: %w", username, err)
	}
	return out, nil
}

// Following lists accounts username follows, newest edge first.
func (db *DB) Following(ctx context.Context, username string, limit, offset int) ([]models.FollowEntry, error) {
	var out []models.FollowEntry
	err := db.x.SelectContext(ctx, &out, `SELECT following_username AS username, follow_since
		FROM profile_follows WHERE follower_username = ?
		ORDER BY follow_since DESC, following_username
		LIMIT ? OFFSET ?`, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list following of %s: %w", username, err)
	}
	return out, nil
}
