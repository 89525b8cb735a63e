// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package database

import (
	"context"
	"fmt"
)

// Candidate queries for account recommendations. Each returns usernames in
// rank order; ties break on username so results are deterministic.

// FriendsOfFollows returns accounts followed by the accounts viewer follows,
// excluding viewer and accounts viewer already follows. Candidates reached
// through more recent intermediate edges rank first.
func (db *DB) FriendsOfFollows(ctx context.Context, viewer string, limit int) ([]string, error) {
	return db.usernames(ctx, "friends of follows", `
		SELECT f2.following_username AS username
		FROM profile_follows f1
		JOIN profile_follows f2 ON f2.follower_username = f1.following_username
		WHERE f1.follower_username = ?
		  AND f2.following_username <> ?
		  AND f2.following_username NOT IN (
			SELECT following_username FROM profile_follows WHERE follower_username = ?)
		GROUP BY f2.following_username
		ORDER BY MAX(f2.follow_since) DESC, f2.following_username
		LIMIT ?`, viewer, viewer, viewer, limit)
}

// PopularUnfollowed returns the most-followed accounts viewer does not
// already follow, excluding viewer.
func (db *DB) PopularUnfollowed(ctx context.Context, viewer string, limit int) ([]string, error) {
	return db.usernames(ctx, "popular unfollowed", `
		SELECT username FROM profiles
		WHERE username <> ?
		  AND username NOT IN (
			SELECT following_username FROM profile_follows WHERE follower_username = ?)
		ORDER BY follower_count DESC, username
		LIMIT ?`, viewer, viewer, limit)
}

// RecentFollowTargets returns the targets of the most recent follow edges,
// each once, excluding exclude (pass "" to exclude nobody).
func (db *DB) RecentFollowTargets(ctx context.Context, exclude string, limit int) ([]string, error) {
	return db.usernames(ctx, "recent follow targets", `
		SELECT following_username AS username
		FROM profile_follows
		WHERE following_username <> ?
		GROUP BY following_username
		ORDER BY MAX(follow_since) DESC, following_username
		LIMIT ?`, exclude, limit)
}

// PopularProfiles returns the most-followed accounts, excluding exclude.
func (db *DB) PopularProfiles(ctx context.Context, exclude string, limit int) ([]string, error) {
	return db.usernames(ctx, "popular profiles", `
		SELECT username FROM profiles
		WHERE username <> ?
		ORDER BY follower_count DESC, username
		LIMIT ?`, exclude, limit)
}

func (db *DB) usernames(ctx context.Context, what, query string, args ...interface{}) ([]string, error) {
	out := []string{}
	if err := db.x.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	return out, nil
}
