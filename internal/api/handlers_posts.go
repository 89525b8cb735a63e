// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/murmur/internal/auth"
	"github.com/tomtom215/murmur/internal/models"
	"github.com/tomtom215/murmur/internal/posts"
)

// CreatePost handles POST /api/posts.
//
// @Summary Create a post
// @Description postType defaults to TEXT_POST. Link, image and video bodies must be public http(s) URLs. Without postTags the tags are taken from the title.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /posts [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in posts.Input
	if err := decodeBody(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	id, err := h.posts.Create(r.Context(), auth.ViewerFromContext(r.Context()).Name(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"postId": id})
}

// GetPost handles GET /api/posts/{postId}.
//
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /posts/{postId} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	p, err := h.posts.Get(r.Context(), id, auth.ViewerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"postData": models.NewPostDTO(p)})
}

// UpdatePost handles PUT /api/posts/{postId}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in posts.Input
	if err := decodeBody(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.posts.Update(r.Context(), id, auth.ViewerFromContext(r.Context()).Name(), in); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}

// DeletePost handles DELETE /api/posts/{postId}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.posts.Delete(r.Context(), id, auth.ViewerFromContext(r.Context()).Name()); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}

// LikePost handles POST /api/posts/{postId}/likes.
//
// @Summary Like a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "ERR_ALREADY_LIKED"
// @Router /posts/{postId}/likes [post]
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.togglePostLike(w, r, true)
}

// UnlikePost handles DELETE /api/posts/{postId}/likes.
func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	h.togglePostLike(w, r, false)
}

func (h *Handler) togglePostLike(w http.ResponseWriter, r *http.Request, like bool) {
	id, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.posts.ToggleLike(r.Context(), id, auth.ViewerFromContext(r.Context()).Name(), like); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}

// PostLikes handles GET /api/posts/{postId}/likes.
func (h *Handler) PostLikes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := pageParam(r, "likePage")
	if err != nil {
		respondError(w, r, err)
		return
	}
	likes, err := h.posts.ListLikes(r.Context(), id, page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"likedUsers": models.NewLikeDTOs(likes)})
}

// PostLikeStatus handles GET /api/posts/{postId}/likes/{userName}.
func (h *Handler) PostLikeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	liked, err := h.posts.LikeStatus(r.Context(), id, chi.URLParam(r, "userName"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"likeStatus": liked})
}

// SearchPosts handles GET /api/posts/search.
//
// @Summary Search posts by tag
// @Description Query words are matched against post tags. SORT_HOT keeps posts modified within the last day.
// @Tags Posts
// @Produce json
// @Param sortType query string false "SORT_HOT, SORT_NEW or SORT_TOP"
// @Param postType query string false "ALL_POSTS or a post type"
// @Param searchQuery query string false "Words to match against tags"
// @Param searchPage query int false "Result page (1-based)"
// @Success 200 {object} map[string]interface{}
// @Router /posts/search [get]
func (h *Handler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := posts.SearchInput{
		Sort:  models.SortType(q.Get("sortType")),
		Type:  q.Get("postType"),
		Query: q.Get("searchQuery"),
	}
	if raw := q.Get("searchPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, models.NewValidationError("searchPage"))
			return
		}
		in.Page = n
	}

	results, err := h.posts.Search(r.Context(), in, auth.ViewerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"searchResults": models.NewPostDTOs(results)})
}
