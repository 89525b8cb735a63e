// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package posts creates, edits, deletes, likes and searches posts.
package posts

import (
	"context"

	"github.com/tomtom215/murmur/internal/authz"
	"github.com/tomtom215/murmur/internal/database"
	"github.com/tomtom215/murmur/internal/events"
	"github.com/tomtom215/murmur/internal/models"
	"github.com/tomtom215/murmur/internal/validation"
)

// DefaultPageSize is the number of posts or likes per page.
const DefaultPageSize = 10

// AllPosts disables the post type filter of Search.
const AllPosts = "ALL_POSTS"

// Store is the post storage.
type Store interface {
	CreatePost(ctx context.Context, p *models.Post) (int64, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, title, body string, tags []string) error
	DeletePost(ctx context.Context, id int64) error
	PostExists(ctx context.Context, id int64) (bool, error)
	SearchPosts(ctx context.Context, s database.PostSearch) ([]models.Post, error)
	SetLike(ctx context.Context, kind models.EntityKind, id int64, username string, like bool) error
	ListLikes(ctx context.Context, kind models.EntityKind, id int64, limit, offset int) ([]models.LikeEntry, error)
}

// Annotator resolves viewer like state.
type Annotator interface {
	IsLikedBy(ctx context.Context, kind models.EntityKind, id int64, viewer *models.Viewer) (bool, error)
	AnnotatePosts(ctx context.Context, posts []models.Post, viewer *models.Viewer) ([]models.PostView, error)
}

// Authorizer decides ownership-scoped actions.
type Authorizer interface {
	Authorize(viewer, owner, object, action string) error
}

// Input is the editable content of a post. An empty Type means TEXT_POST.
// Tags is a free-form string; when it has no words the tags are taken from
// the title.
type Input struct {
	Type  models.PostType `json:"postType" validate:"posttype"`
	Title string          `json:"postTitle" validate:"notblank,max=300"`
	Body  string          `json:"postBody"`
	Tags  string          `json:"postTags"`
}

// SearchInput selects posts. Empty fields take the defaults: SORT_HOT,
// ALL_POSTS, no query, page 1.
type SearchInput struct {
	Sort  models.SortType `json:"sortType" validate:"sorttype"`
	Type  string          `json:"postType" validate:"oneof=ALL_POSTS TEXT_POST LINK_POST IMAGE_POST VIDEO_POST"`
	Query string          `json:"searchQuery"`
	Page  int             `json:"searchPage" validate:"min=1"`
}

// Service implements post operations.
type Service struct {
	store    Store
	likes    Annotator
	authz    Authorizer
	emitter  events.Emitter
	pageSize int
}

// NewService creates a Service. A nil emitter discards events.
func NewService(store Store, likes Annotator, authorizer Authorizer, emitter events.Emitter, pageSize int) *Service {
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{store: store, likes: likes, authz: authorizer, emitter: emitter, pageSize: pageSize}
}

// validate checks in against the post type it will be stored under. Bodies
// of link, image and video posts are public http(s) URLs.
func validate(in *Input, postType models.PostType) error {
	var fields []string
	if verr := validation.ValidateStruct(in); verr != nil {
		fields = verr.Fields()
	}
	if postType.Valid() && postType != models.PostText && !validation.IsPublicURL(in.Body) {
		fields = append(fields, "postBody")
	}
	if len(fields) > 0 {
		return models.NewValidationError(fields...)
	}
	return nil
}

// Create stores a new post by author and returns its id.
func (s *Service) Create(ctx context.Context, author string, in Input) (int64, error) {
	if in.Type == "" {
		in.Type = models.PostText
	}
	if err := validate(&in, in.Type); err != nil {
		return 0, err
	}
	if err := s.authz.Authorize(author, "", authz.ObjectPost, authz.ActionCreate); err != nil {
		return 0, err
	}

	p := &models.Post{
		Author: author,
		Type:   in.Type,
		Title:  in.Title,
		Body:   in.Body,
		Tags:   Tags(in.Tags, in.Title),
	}
	id, err := s.store.CreatePost(ctx, p)
	if err != nil {
		return 0, err
	}

	ev := events.New(events.PostCreated, author)
	ev.EntityID = id
	ev.PostID = id
	events.EmitLogged(ctx, s.emitter, ev)
	return id, nil
}

// Get returns a post with the viewer's like state.
func (s *Service) Get(ctx context.Context, id int64, viewer *models.Viewer) (*models.PostView, error) {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.IsLikedBy(ctx, models.KindPost, id, viewer)
	if err != nil {
		return nil, err
	}
	return &models.PostView{Post: *p, LikedByViewer: liked}, nil
}

// Update replaces the content of a post owned by author. The post type is
// fixed at creation; in.Type is ignored.
func (s *Service) Update(ctx context.Context, id int64, author string, in Input) error {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	in.Type = p.Type
	if err := validate(&in, p.Type); err != nil {
		return err
	}
	if err := s.authz.Authorize(author, p.Author, authz.ObjectPost, authz.ActionUpdate); err != nil {
		return err
	}
	if err := s.store.UpdatePost(ctx, id, in.Title, in.Body, Tags(in.Tags, in.Title)); err != nil {
		return err
	}

	ev := events.New(events.PostUpdated, author)
	ev.EntityID = id
	ev.PostID = id
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}

// Delete removes a post owned by author with everything attached to it.
func (s *Service) Delete(ctx context.Context, id int64, author string) error {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.Authorize(author, p.Author, authz.ObjectPost, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}

	ev := events.New(events.PostDeleted, author)
	ev.EntityID = id
	ev.PostID = id
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}

// ToggleLike likes (like=true) or unlikes a post for viewer.
func (s *Service) ToggleLike(ctx context.Context, id int64, viewer string, like bool) error {
	if err := s.authz.Authorize(viewer, "", authz.ObjectPost, authz.ActionLike); err != nil {
		return err
	}
	if err := s.store.SetLike(ctx, models.KindPost, id, viewer, like); err != nil {
		return err
	}

	t := events.PostLiked
	if !like {
		t = events.PostUnliked
	}
	ev := events.New(t, viewer)
	ev.EntityID = id
	ev.PostID = id
	events.EmitLogged(ctx, s.emitter, ev)
	return nil
}

// ListLikes returns page likePage of the accounts that liked the post,
// oldest like first.
func (s *Service) ListLikes(ctx context.Context, id int64, likePage int) ([]models.LikeEntry, error) {
	if likePage < 1 {
		return nil, models.NewValidationError("likePage")
	}
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	offset, ok := models.PageOffset(likePage, s.pageSize)
	if !ok {
		return []models.LikeEntry{}, nil
	}
	return s.store.ListLikes(ctx, models.KindPost, id, s.pageSize, offset)
}

// LikeStatus reports whether username has liked the post.
func (s *Service) LikeStatus(ctx context.Context, id int64, username string) (bool, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return false, err
	}
	return s.likes.IsLikedBy(ctx, models.KindPost, id, models.NewViewer(username))
}

// Search returns one page of posts matching in, with the viewer's like
// state.
func (s *Service) Search(ctx context.Context, in SearchInput, viewer *models.Viewer) ([]models.PostView, error) {
	if in.Sort == "" {
		in.Sort = models.SortHot
	}
	if in.Type == "" {
		in.Type = AllPosts
	}
	if in.Page == 0 {
		in.Page = 1
	}
	if err := validation.Validate(&in); err != nil {
		return nil, err
	}

	offset, ok := models.PageOffset(in.Page, s.pageSize)
	if !ok {
		return []models.PostView{}, nil
	}
	q := database.PostSearch{
		Sort:   in.Sort,
		Tags:   SplitTags(in.Query, 0),
		Limit:  s.pageSize,
		Offset: offset,
	}
	if in.Type != AllPosts {
		q.Type = models.PostType(in.Type)
	}
	posts, err := s.store.SearchPosts(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.likes.AnnotatePosts(ctx, posts, viewer)
}

func (s *Service) mustExist(ctx context.Context, id int64) error {
	ok, err := s.store.PostExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFound("post", id)
	}
	return nil
}
