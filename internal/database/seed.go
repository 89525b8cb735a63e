// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/models"
)

// SeedDemoData fills an empty store with a few accounts, follows, posts and
// a short comment thread. It does nothing when any profile exists.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var n int64
	if err := db.x.GetContext(ctx, &n, `SELECT COUNT(*) FROM profiles`); err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}
	if n > 0 {
		return nil
	}

	profiles := []models.Profile{
		{Username: "alice", ProfileName: "Alice", Description: "Writes about distributed systems", AccountActivated: true},
		{Username: "bob", ProfileName: "Bob", Description: "Mostly photos", AccountActivated: true},
		{Username: "carol", ProfileName: "Carol", Description: "Asks good questions", AccountActivated: true},
		{Username: "dave", ProfileName: "Dave", Description: "Lurker", AccountActivated: true},
	}
	for i := range profiles {
		if err := db.CreateProfile(ctx, &profiles[i]); err != nil {
			return err
		}
	}

	for _, edge := range [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"carol", "alice"}, {"dave", "alice"}} {
		if err := db.Follow(ctx, edge[0], edge[1]); err != nil {
			return fmt.Errorf("failed to seed follow %s -> %s: %w", edge[0], edge[1], err)
		}
	}

	posts := []models.Post{
		{Author: "bob", Type: models.PostText, Title: "Hello from Bob", Body: "First post.", Tags: []string{"hello", "from", "bob"}},
		{Author: "carol", Type: models.PostLink, Title: "Reading list", Body: "https://go.dev/doc/effective_go", Tags: []string{"go", "reading"}},
		{Author: "alice", Type: models.PostText, Title: "Consensus notes", Body: "Raft in one page.", Tags: []string{"raft", "consensus"}},
	}
	for i := range posts {
		if _, err := db.CreatePost(ctx, &posts[i]); err != nil {
			return err
		}
	}

	root := &models.Comment{Author: "alice", PostID: posts[0].ID, Type: models.CommentRoot, Body: "Welcome!"}
	if _, err := db.CreateComment(ctx, root, nil); err != nil {
		return err
	}
	reply := &models.Comment{Author: "bob", PostID: posts[0].ID, Type: models.CommentReply, Body: "Thanks", ParentID: &root.ID}
	if _, err := db.CreateComment(ctx, reply, nil); err != nil {
		return err
	}

	logging.Info().Int("profiles", len(profiles)).Int("posts", len(posts)).Msg("Seeded demo data")
	return nil
}
