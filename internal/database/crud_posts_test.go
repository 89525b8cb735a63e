// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/murmur/internal/models"
)

func postIDs(posts []models.Post) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCreateAndGetPost(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice")

	id := mustPost(t, db, "alice", "Gophers", "go", "gophers")
	p, err := db.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if p.Author != "alice" || p.Type != models.PostText || p.EditedFlag {
		t.Errorf("post = %+v", p)
	}
	if want := []string{"go", "gophers"}; !reflect.DeepEqual(p.Tags, want) {
		t.Errorf("tags = %v, want %v", p.Tags, want)
	}
	if !p.ModifiedTime.Equal(p.DateCreated) {
		t.Errorf("modified %v != created %v", p.ModifiedTime, p.DateCreated)
	}

	if _, err := db.GetPost(ctx, 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetPost(999) = %v, want not found", err)
	}
}

func TestUpdatePostReplacesTags(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice")

	id := mustPost(t, db, "alice", "Old", "old", "tags")
	before, _ := db.GetPost(ctx, id)

	if err := db.UpdatePost(ctx, id, "New", "new body", []string{"fresh"}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	p, err := db.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if p.Title != "New" || p.Body != "new body" || !p.EditedFlag {
		t.Errorf("post = %+v", p)
	}
	if !p.ModifiedTime.After(before.ModifiedTime) {
		t.Errorf("modified time not advanced: %v -> %v", before.ModifiedTime, p.ModifiedTime)
	}
	if want := []string{"fresh"}; !reflect.DeepEqual(p.Tags, want) {
		t.Errorf("tags = %v, want %v", p.Tags, want)
	}

	if err := db.UpdatePost(ctx, 999, "x", "y", nil); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdatePost(999) = %v, want not found", err)
	}
}

func TestDeletePostCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice", "bob")

	id := mustPost(t, db, "alice", "Doomed", "doom")
	keep := mustPost(t, db, "bob", "Survivor")
	root := mustComment(t, db, "bob", id, nil)
	mustComment(t, db, "alice", id, &root)
	other := mustComment(t, db, "alice", keep, nil)
	if err := db.SetLike(ctx, models.KindPost, id, "bob", true); err != nil {
		t.Fatal(err)
	}
	if err := db.SetLike(ctx, models.KindComment, root, "alice", true); err != nil {
		t.Fatal(err)
	}
	if err := db.SetLike(ctx, models.KindComment, other, "bob", true); err != nil {
		t.Fatal(err)
	}

	if err := db.DeletePost(ctx, id); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	counts := map[string]int64{
		`SELECT COUNT(*) FROM posts`:         1,
		`SELECT COUNT(*) FROM post_tags`:     0,
		`SELECT COUNT(*) FROM post_likes`:    0,
		`SELECT COUNT(*) FROM comments`:      1,
		`SELECT COUNT(*) FROM comment_likes`: 1,
	}
	for q, want := range counts {
		var n int64
		if err := db.x.GetContext(ctx, &n, q); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		if n != want {
			t.Errorf("%s = %d, want %d", q, n, want)
		}
	}

	if err := db.DeletePost(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second DeletePost = %v, want not found", err)
	}
}

func TestFeedQueries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice", "bob", "carol")
	mustFollow(t, db, "alice", "bob")

	b1 := mustPost(t, db, "bob", "b1")
	c1 := mustPost(t, db, "carol", "c1")
	a1 := mustPost(t, db, "alice", "a1")
	b2 := mustPost(t, db, "bob", "b2")

	global, err := db.GlobalPosts(ctx, 10, 0)
	if err != nil {
		t.Fatalf("GlobalPosts: %v", err)
	}
	if want := []int64{b2, a1, c1, b1}; !reflect.DeepEqual(postIDs(global), want) {
		t.Errorf("global = %v, want %v", postIDs(global), want)
	}

	page2, err := db.GlobalPosts(ctx, 2, 2)
	if err != nil {
		t.Fatalf("GlobalPosts page 2: %v", err)
	}
	if want := []int64{c1, b1}; !reflect.DeepEqual(postIDs(page2), want) {
		t.Errorf("page 2 = %v, want %v", postIDs(page2), want)
	}

	followed, err := db.FollowedPosts(ctx, "alice", 10, 0)
	if err != nil {
		t.Fatalf("FollowedPosts: %v", err)
	}
	if want := []int64{b2, b1}; !reflect.DeepEqual(postIDs(followed), want) {
		t.Errorf("followed = %v, want %v", postIDs(followed), want)
	}

	unfollowed, err := db.UnfollowedPosts(ctx, "alice", 10, 0)
	if err != nil {
		t.Fatalf("UnfollowedPosts: %v", err)
	}
	if want := []int64{a1, c1}; !reflect.DeepEqual(postIDs(unfollowed), want) {
		t.Errorf("unfollowed = %v, want %v", postIDs(unfollowed), want)
	}

	mine, err := db.PostsByAuthor(ctx, "bob", 10, 0)
	if err != nil {
		t.Fatalf("PostsByAuthor: %v", err)
	}
	if want := []int64{b2, b1}; !reflect.DeepEqual(postIDs(mine), want) {
		t.Errorf("by author = %v, want %v", postIDs(mine), want)
	}
}

func TestSearchPosts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice", "bob")

	goPost := mustPost(t, db, "alice", "Go tips", "go", "tips")
	rustPost := mustPost(t, db, "bob", "Rust tips", "rust", "tips")
	linkID, err := db.CreatePost(ctx, &models.Post{
		Author: "bob", Type: models.PostLink, Title: "Go link", Body: "https://go.dev", Tags: []string{"go"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SetLike(ctx, models.KindPost, rustPost, "alice", true); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		search PostSearch
		want   []int64
	}{
		{"new by tag", PostSearch{Sort: models.SortNew, Tags: []string{"go"}, Limit: 10}, []int64{linkID, goPost}},
		{"any tag", PostSearch{Sort: models.SortNew, Tags: []string{"rust", "go"}, Limit: 10}, []int64{linkID, rustPost, goPost}},
		{"type filter", PostSearch{Sort: models.SortNew, Type: models.PostLink, Limit: 10}, []int64{linkID}},
		{"top", PostSearch{Sort: models.SortTop, Tags: []string{"tips"}, Limit: 10}, []int64{rustPost, goPost}},
		{"hot keeps recent", PostSearch{Sort: models.SortHot, Limit: 10}, []int64{linkID, rustPost, goPost}},
		{"paged", PostSearch{Sort: models.SortNew, Limit: 1, Offset: 1}, []int64{rustPost}},
	}
	for _, tt := range tests {
		got, err := db.SearchPosts(ctx, tt.search)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !reflect.DeepEqual(postIDs(got), tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, postIDs(got), tt.want)
		}
	}
}
