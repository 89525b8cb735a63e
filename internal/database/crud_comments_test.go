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

func TestCreateCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice")
	p1 := mustPost(t, db, "alice", "one")
	p2 := mustPost(t, db, "alice", "two")
	foreign := mustComment(t, db, "alice", p2, nil)
	missing := int64(12345)

	tests := []struct {
		name   string
		c      models.Comment
		target error
		field  string
	}{
		{"unknown post", models.Comment{PostID: 999, Type: models.CommentRoot}, models.ErrNotFound, ""},
		{"reply without parent", models.Comment{PostID: p1, Type: models.CommentReply}, nil, "commentParent"},
		{"reply to missing parent", models.Comment{PostID: p1, Type: models.CommentReply, ParentID: &missing}, nil, "commentParent"},
		{"reply across posts", models.Comment{PostID: p1, Type: models.CommentReply, ParentID: &foreign}, nil, "commentParent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.c
			c.Author, c.Body = "alice", "x"
			_, err := db.CreateComment(ctx, &c, nil)
			if tt.target != nil {
				if !errors.Is(err, tt.target) {
					t.Fatalf("err = %v, want %v", err, tt.target)
				}
				return
			}
			var ve *models.ValidationError
			if !errors.As(err, &ve) || ve.Fields[0] != tt.field {
				t.Fatalf("err = %v, want validation error on %s", err, tt.field)
			}
		})
	}

	post, _ := db.GetPost(ctx, p1)
	if post.CommentCount != 0 {
		t.Errorf("comment count = %d after failed creates", post.CommentCount)
	}
}

func TestCreateReplyUpdatesCounters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice", "bob")
	postID := mustPost(t, db, "alice", "thread")

	root := mustComment(t, db, "alice", postID, nil)
	r1 := mustComment(t, db, "bob", postID, &root)
	r2 := mustComment(t, db, "alice", postID, &root)

	parent, err := db.GetComment(ctx, root)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if parent.ReplyCount != 2 || parent.ParentID != nil || parent.Type != models.CommentRoot {
		t.Errorf("root = %+v", parent)
	}
	post, _ := db.GetPost(ctx, postID)
	if post.CommentCount != 3 {
		t.Errorf("post comment count = %d, want 3", post.CommentCount)
	}

	replies, err := db.Replies(ctx, root)
	if err != nil {
		t.Fatalf("Replies: %v", err)
	}
	var ids []int64
	for _, r := range replies {
		ids = append(ids, r.ID)
		if r.ParentID == nil || *r.ParentID != root {
			t.Errorf("reply %d parent = %v", r.ID, r.ParentID)
		}
	}
	if want := []int64{r1, r2}; !reflect.DeepEqual(ids, want) {
		t.Errorf("replies = %v, want %v", ids, want)
	}
}

func TestCreateCommentRollsBackAfterInsertFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice")
	postID := mustPost(t, db, "alice", "atomic")
	root := mustComment(t, db, "alice", postID, nil)

	boom := errors.New("injected failure")
	_, err := db.CreateComment(ctx, &models.Comment{
		Author: "alice", PostID: postID, Type: models.CommentReply, Body: "lost", ParentID: &root,
	}, func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want injected failure", err)
	}

	var n int64
	if err := db.x.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("comments = %d, want 1", n)
	}
	parent, _ := db.GetComment(ctx, root)
	post, _ := db.GetPost(ctx, postID)
	if parent.ReplyCount != 0 || post.CommentCount != 1 {
		t.Errorf("counters changed: reply %d, comments %d", parent.ReplyCount, post.CommentCount)
	}
}

func TestRootCommentsPaging(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice")
	postID := mustPost(t, db, "alice", "roots")

	var roots []int64
	for i := 0; i < 3; i++ {
		id := mustComment(t, db, "alice", postID, nil)
		roots = append(roots, id)
		mustComment(t, db, "alice", postID, &id)
	}

	first, err := db.RootComments(ctx, postID, 2, 0)
	if err != nil {
		t.Fatalf("RootComments: %v", err)
	}
	second, err := db.RootComments(ctx, postID, 2, 2)
	if err != nil {
		t.Fatalf("RootComments: %v", err)
	}
	var got []int64
	for _, c := range append(first, second...) {
		got = append(got, c.ID)
	}
	if !reflect.DeepEqual(got, roots) {
		t.Errorf("roots = %v, want %v", got, roots)
	}

	mine, err := db.CommentsByAuthor(ctx, "alice", 10, 0)
	if err != nil {
		t.Fatalf("CommentsByAuthor: %v", err)
	}
	if len(mine) != 6 || mine[0].ID < mine[5].ID {
		t.Errorf("by author: %d comments, newest first expected", len(mine))
	}
}

func TestUpdateCommentBody(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice")
	postID := mustPost(t, db, "alice", "edit")
	id := mustComment(t, db, "alice", postID, nil)

	if err := db.UpdateCommentBody(ctx, id, "edited"); err != nil {
		t.Fatalf("UpdateCommentBody: %v", err)
	}
	c, _ := db.GetComment(ctx, id)
	if c.Body != "edited" || !c.EditedFlag || !c.ModifiedTime.After(c.DateCreated) {
		t.Errorf("comment = %+v", c)
	}
	if err := db.UpdateCommentBody(ctx, 999, "x"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateCommentBody(999) = %v, want not found", err)
	}
}

func TestDeleteCommentRemovesSubtree(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustProfiles(t, db, "alice", "bob")
	postID := mustPost(t, db, "alice", "prune")

	root := mustComment(t, db, "alice", postID, nil)
	mid := mustComment(t, db, "bob", postID, &root)
	leaf := mustComment(t, db, "alice", postID, &mid)
	mustComment(t, db, "bob", postID, &leaf)
	sibling := mustComment(t, db, "bob", postID, &root)
	if err := db.SetLike(ctx, models.KindComment, leaf, "bob", true); err != nil {
		t.Fatal(err)
	}

	removed, err := db.DeleteComment(ctx, mid)
	if err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	post, _ := db.GetPost(ctx, postID)
	if post.CommentCount != 2 {
		t.Errorf("post comment count = %d, want 2", post.CommentCount)
	}
	parent, _ := db.GetComment(ctx, root)
	if parent.ReplyCount != 1 {
		t.Errorf("root reply count = %d, want 1", parent.ReplyCount)
	}
	if _, err := db.GetComment(ctx, sibling); err != nil {
		t.Errorf("sibling removed: %v", err)
	}
	var likes int64
	if err := db.x.GetContext(ctx, &likes, `SELECT COUNT(*) FROM comment_likes`); err != nil {
		t.Fatal(err)
	}
	if likes != 0 {
		t.Errorf("comment likes = %d, want 0", likes)
	}
	if _, err := db.DeleteComment(ctx, mid); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second delete = %v, want not found", err)
	}
}
