// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/murmur/internal/auth"
	"github.com/tomtom215/murmur/internal/comments"
	"github.com/tomtom215/murmur/internal/models"
)

// PostComments handles GET /api/posts/{postId}/comments.
//
// @Summary Get a page of a post's comment trees
// @Description Root comments are ordered oldest first and each is expanded to its full reply tree. Every node carries userLikeStatus for the viewer.
// @Tags Comments
// @Produce json
// @Param postId path int true "Post ID"
// @Param commentPage query int false "Root comment page (1-based)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /posts/{postId}/comments [get]
func (h *Handler) PostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := pageParam(r, "commentPage")
	if err != nil {
		respondError(w, r, err)
		return
	}

	roots, err := h.trees.GetRootPage(r.Context(), postID, auth.ViewerFromContext(r.Context()), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"postComments": models.NewCommentForestDTO(roots)})
}

// CommentTree handles GET /api/comments/{commentId} and
// GET /api/comments/{commentId}/tree.
//
// @Summary Get a comment with its full reply tree
// @Tags Comments
// @Produce json
// @Param commentId path int true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /comments/{commentId}/tree [get]
func (h *Handler) CommentTree(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r, "commentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	node, err := h.trees.GetSubtree(r.Context(), commentID, auth.ViewerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"commentData": models.NewCommentTreeDTO(node)})
}

// PostCommentTree handles GET /api/posts/{postId}/comments/{commentId}. A
// comment that belongs to another post is an invalid property pair.
func (h *Handler) PostCommentTree(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	commentID, err := idParam(r, "commentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	node, err := h.trees.GetSubtreeInPost(r.Context(), postID, commentID, auth.ViewerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"commentData": models.NewCommentTreeDTO(node)})
}

// CreatePostComment handles POST /api/posts/{postId}/comments.
//
// @Summary Comment on a post
// @Description commentType defaults to ROOT. A REPLY needs commentParent, a comment on the same post.
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /posts/{postId}/comments [post]
func (h *Handler) CreatePostComment(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "postId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in comments.CreateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	in.PostID = postID
	h.createComment(w, r, in, false)
}

// CreateComment handles POST /api/comments, where the post id travels in
// the body. An unknown post is reported as an invalid postId.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var in comments.CreateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if in.PostID < 1 {
		respondError(w, r, models.NewValidationError("postId"))
		return
	}
	h.createComment(w, r, in, true)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request, in comments.CreateInput, postFromBody bool) {
	if in.Type == "" {
		in.Type = models.CommentRoot
		in.ParentID = nil
	}
	in.Author = auth.ViewerFromContext(r.Context()).Name()

	postID, commentID, err := h.comments.Create(r.Context(), in)
	if err != nil {
		if postFromBody && errors.Is(err, models.ErrNotFound) {
			err = models.NewValidationError("postId")
		}
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"postId": postID, "commentId": commentID})
}

// UpdateComment handles PUT /api/comments/{commentId}.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r, "commentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in comments.UpdateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.comments.Update(r.Context(), commentID, auth.ViewerFromContext(r.Context()).Name(), in); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}

// DeleteComment handles DELETE /api/comments/{commentId}. Replies are
// removed with the comment.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r, "commentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	removed, err := h.comments.Delete(r.Context(), commentID, auth.ViewerFromContext(r.Context()).Name())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, envelope{"deletedComments": removed})
}

// LikeComment handles POST /api/comments/{commentId}/likes.
func (h *Handler) LikeComment(w http.ResponseWriter, r *http.Request) {
	h.toggleCommentLike(w, r, true)
}

// UnlikeComment handles DELETE /api/comments/{commentId}/likes.
func (h *Handler) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	h.toggleCommentLike(w, r, false)
}

func (h *Handler) toggleCommentLike(w http.ResponseWriter, r *http.Request, like bool) {
	commentID, err := idParam(r, "commentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.comments.ToggleLike(r.Context(), commentID, auth.ViewerFromContext(r.Context()).Name(), like); err != nil {
		respondError(w, r, err)
		return
	}
	respondSuccess(w, r, nil)
}
