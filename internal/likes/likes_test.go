// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package likes

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/murmur/internal/models"
)

type fakeStore struct {
	liked map[models.EntityKind]map[int64][]string
	calls int
	err   error
}

func (f *fakeStore) HasLike(_ context.Context, kind models.EntityKind, id int64, username string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.liked[kind][id] {
		if u == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) LikedIDs(ctx context.Context, kind models.EntityKind, ids []int64, username string) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		ok, err := f.HasLike(ctx, kind, id, username)
		if err != nil {
			return nil, err
		}
		if ok {
			out[id] = true
		}
	}
	return out, nil
}

func newFake() *fakeStore {
	return &fakeStore{liked: map[models.EntityKind]map[int64][]string{
		KindPost:    {1: {"alice"}, 2: {"bob"}},
		KindComment: {1: {"bob"}},
	}}
}

func TestIsLikedByAnonymousSkipsStore(t *testing.T) {
	t.Parallel()

	store := newFake()
	a := NewAnnotator(store)
	liked, err := a.IsLikedBy(context.Background(), KindPost, 1, nil)
	if err != nil || liked {
		t.Fatalf("IsLikedBy(nil) = %v, %v", liked, err)
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for anonymous viewer", store.calls)
	}
}

func TestIsLikedByKinds(t *testing.T) {
	t.Parallel()

	a := NewAnnotator(newFake())
	ctx := context.Background()
	bob := models.NewViewer("bob")

	tests := []struct {
		kind EntityKind
		id   int64
		want bool
	}{
		{KindPost, 1, false},
		{KindPost, 2, true},
		{KindComment, 1, true},
		{KindComment, 2, false},
	}
	for _, tt := range tests {
		got, err := a.IsLikedBy(ctx, tt.kind, tt.id, bob)
		if err != nil {
			t.Fatalf("IsLikedBy: %v", err)
		}
		if got != tt.want {
			t.Errorf("IsLikedBy(%s, %d) = %v, want %v", tt.kind, tt.id, got, tt.want)
		}
	}
}

func TestAnnotatePosts(t *testing.T) {
	t.Parallel()

	a := NewAnnotator(newFake())
	posts := []models.Post{{ID: 1}, {ID: 2}, {ID: 3}}

	views, err := a.AnnotatePosts(context.Background(), posts, models.NewViewer("alice"))
	if err != nil {
		t.Fatalf("AnnotatePosts: %v", err)
	}
	want := []bool{true, false, false}
	for i, v := range views {
		if v.ID != posts[i].ID || v.LikedByViewer != want[i] {
			t.Errorf("view %d = {%d %v}, want {%d %v}", i, v.ID, v.LikedByViewer, posts[i].ID, want[i])
		}
	}

	anon, err := a.AnnotatePosts(context.Background(), posts, nil)
	if err != nil || len(anon) != 3 || anon[0].LikedByViewer {
		t.Errorf("anonymous annotate = %+v, %v", anon, err)
	}
}

func TestStoreErrorPropagates(t *testing.T) {
	t.Parallel()

	store := newFake()
	store.err = errors.New("disk on fire")
	a := NewAnnotator(store)
	if _, err := a.IsLikedBy(context.Background(), KindPost, 1, models.NewViewer("bob")); !errors.Is(err, store.err) {
		t.Errorf("err = %v, want store error", err)
	}
}
