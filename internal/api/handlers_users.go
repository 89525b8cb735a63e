// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/murmur/internal/auth"
	"github.com/tomtom215/murmur/internal/models"
	"github.com/tomtom215/murmur/internal/profiles"
)

// userPath returns the API path of a user sub-resource.
func userPath(username, resource string) string {
	return "/api/users/" + url.PathEscape(username) + "/" + resource
}

// Me handles GET /api/users/me by redirecting to the viewer's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFromContext(r.Context()).Name()
	http.Redirect(w, r, userPath(viewer, "profile"), http.StatusFound)
}

// UpdateMe handles POST /api/users/me.
//
// @Summary Update the viewer's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /users/me [post]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in profiles.UpdateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	viewer := auth.ViewerFromContext(r.Context()).Name()
	if err := h.profiles.UpdateMe(r.Context(), viewer, in); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"updatedProfile": userPath(viewer, "profile")})
}

// Profile handles GET /api/users/{userName}/profile.
//
// @Summary Get a profile
// @Description With a token, followingUser and followedByUser describe the relationship between viewer and profile.
// @Tags Users
// @Produce json
// @Param userName path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{userName}/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "userName")
	v, err := h.profiles.Get(r.Context(), username, auth.ViewerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"profileData": models.ProfilePageDTO{
		ProfileDTO:     models.NewProfileDTO(&v.Profile),
		FollowingUser:  v.FollowingUser,
		FollowedByUser: v.FollowedByUser,
		UserPosts:      userPath(username, "posts"),
		UserComments:   userPath(username, "comments"),
		UserFollowers:  userPath(username, "followers"),
		UserFollowing:  userPath(username, "following"),
	}})
}

// Avatar handles GET /api/users/{userName}/avatar by redirecting to the
// stored avatar URL.
func (h *Handler) Avatar(w http.ResponseWriter, r *http.Request) {
	v, err := h.profiles.Get(r.Context(), chi.URLParam(r, "userName"), nil)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if v.Profile.AvatarURL == "" {
		respondStatus(w, r, http.StatusNotFound, ResultNotFound)
		return
	}
	http.Redirect(w, r, v.Profile.AvatarURL, http.StatusFound)
}

// UserPosts handles GET /api/users/{userName}/posts.
func (h *Handler) UserPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r, "postPage")
	if err != nil {
		respondError(w, r, err)
		return
	}
	ps, err := h.profiles.Posts(r.Context(), chi.URLParam(r, "userName"), auth.ViewerFromContext(r.Context()), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"userPosts": models.NewPostDTOs(ps)})
}

// UserComments handles GET /api/users/{userName}/comments.
func (h *Handler) UserComments(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r, "commentPage")
	if err != nil {
		respondError(w, r, err)
		return
	}
	cs, err := h.profiles.Comments(r.Context(), chi.URLParam(r, "userName"), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"userComments": models.NewCommentDTOs(cs)})
}

// Followers handles GET /api/users/{userName}/followers.
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r, "followerPage")
	if err != nil {
		respondError(w, r, err)
		return
	}
	es, err := h.profiles.Followers(r.Context(), chi.URLParam(r, "userName"), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"followerUsers": models.NewFollowerDTOs(es)})
}

// Following handles GET /api/users/{userName}/following.
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r, "followingPage")
	if err != nil {
		respondError(w, r, err)
		return
	}
	es, err := h.profiles.Following(r.Context(), chi.URLParam(r, "userName"), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"followingUsers": models.NewFollowingDTOs(es)})
}

// Follow handles POST /api/users/{userName}/follows.
//
// @Summary Follow a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userName path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "ERR_ALREADY_FOLLOWED or ERR_SELF_FOLLOW"
// @Failure 404 {object} map[string]interface{}
// @Router /users/{userName}/follows [post]
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFromContext(r.Context()).Name()
	if err := h.profiles.Follow(r.Context(), viewer, chi.URLParam(r, "userName")); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}

// Unfollow handles DELETE /api/users/{userName}/follows.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFromContext(r.Context()).Name()
	if err := h.profiles.Unfollow(r.Context(), viewer, chi.URLParam(r, "userName")); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}
