// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
database_schema.go - Database Schema Management

Tables:
  - profiles: accounts and their cached follower/following counts
  - profile_follows: directed follow edges
  - posts, post_tags: posts and their ordered tag sets
  - post_likes, comment_likes: like join rows, the source of truth for "liked"
  - comments: ROOT and REPLY comments forming per-post trees

Relationships are enforced by the mutation transactions rather than FOREIGN
KEY constraints so cascading deletes stay in one place (DeletePost,
DeleteComment). Counter columns are caches maintained by those same
transactions.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates sequences, tables and indexes.
func (db *DB) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func schemaQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS post_id_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS comment_id_seq START 1`,

		`CREATE TABLE IF NOT EXISTS profiles (
			username VARCHAR PRIMARY KEY,
			profile_name VARCHAR NOT NULL DEFAULT '',
			profile_description VARCHAR NOT NULL DEFAULT '',
			avatar_url VARCHAR NOT NULL DEFAULT '',
			follower_count BIGINT NOT NULL DEFAULT 0,
			following_count BIGINT NOT NULL DEFAULT 0,
			account_activated BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS profile_follows (
			follower_username VARCHAR NOT NULL,
			following_username VARCHAR NOT NULL,
			follow_since TIMESTAMP NOT NULL,
			PRIMARY KEY (follower_username, following_username),
			CHECK (follower_username <> following_username)
		)`,

		`CREATE TABLE IF NOT EXISTS posts (
			post_id BIGINT PRIMARY KEY DEFAULT nextval('post_id_seq'),
			post_author VARCHAR NOT NULL,
			post_type VARCHAR NOT NULL,
			post_title VARCHAR NOT NULL,
			post_body VARCHAR NOT NULL DEFAULT '',
			post_like_count BIGINT NOT NULL DEFAULT 0,
			post_comment_count BIGINT NOT NULL DEFAULT 0,
			post_date_created TIMESTAMP NOT NULL,
			post_modified_time TIMESTAMP NOT NULL,
			post_edited_flag BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		// No key: tag sets are replaced wholesale inside update transactions.
		`CREATE TABLE IF NOT EXISTS post_tags (
			post_id BIGINT NOT NULL,
			tag VARCHAR NOT NULL,
			position INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS post_likes (
			post_id BIGINT NOT NULL,
			username VARCHAR NOT NULL,
			liked_at TIMESTAMP NOT NULL,
			PRIMARY KEY (post_id, username)
		)`,

		`CREATE TABLE IF NOT EXISTS comments (
			comment_id BIGINT PRIMARY KEY DEFAULT nextval('comment_id_seq'),
			comment_author VARCHAR NOT NULL,
			comment_parent_post BIGINT NOT NULL,
			comment_type VARCHAR NOT NULL,
			comment_body VARCHAR NOT NULL,
			comment_reply_parent BIGINT,
			comment_like_count BIGINT NOT NULL DEFAULT 0,
			comment_reply_count BIGINT NOT NULL DEFAULT 0,
			comment_date_created TIMESTAMP NOT NULL,
			comment_modified_time TIMESTAMP NOT NULL,
			comment_edited_flag BOOLEAN NOT NULL DEFAULT FALSE,
			CHECK (comment_type IN ('ROOT', 'REPLY')),
			CHECK ((comment_type = 'ROOT') = (comment_reply_parent IS NULL))
		)`,

		`CREATE TABLE IF NOT EXISTS comment_likes (
			comment_id BIGINT NOT NULL,
			username VARCHAR NOT NULL,
			liked_at TIMESTAMP NOT NULL,
			PRIMARY KEY (comment_id, username)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_follows_following ON profile_follows(following_username)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(post_author)`,
		`CREATE INDEX IF NOT EXISTS idx_post_tags_post ON post_tags(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_post_tags_tag ON post_tags(tag)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(comment_parent_post)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments(comment_reply_parent)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_author ON comments(comment_author)`,
	}
}
