// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

import "time"

// PostType enumerates the supported post kinds.
type PostType string

const (
	PostText  PostType = "TEXT_POST"
	PostLink  PostType = "LINK_POST"
	PostImage PostType = "IMAGE_POST"
	PostVideo PostType = "VIDEO_POST"
)

// Valid reports whether t is a known post type.
func (t PostType) Valid() bool {
	switch t {
	case PostText, PostLink, PostImage, PostVideo:
		return true
	}
	return false
}

// MaxPostTags is the size of a post's tag set.
const MaxPostTags = 4

// Post is a row of the posts table. Tags live in post_tags and are attached
// by the storage layer after the row is scanned.
type Post struct {
	ID           int64     `db:"post_id"`
	Author       string    `db:"post_author"`
	Type         PostType  `db:"post_type"`
	Title        string    `db:"post_title"`
	Body         string    `db:"post_body"`
	LikeCount    int64     `db:"post_like_count"`
	CommentCount int64     `db:"post_comment_count"`
	DateCreated  time.Time `db:"post_date_created"`
	ModifiedTime time.Time `db:"post_modified_time"`
	EditedFlag   bool      `db:"post_edited_flag"`
	Tags         []string  `db:"-"`
}

// PostView is a post annotated for a specific viewer.
type PostView struct {
	Post
	LikedByViewer bool
}

// PostDTO is the wire shape of a post.
type PostDTO struct {
	PostID           int64     `json:"postId"`
	PostAuthor       string    `json:"postAuthor"`
	PostType         string    `json:"postType"`
	PostTitle        string    `json:"postTitle"`
	PostBody         string    `json:"postBody"`
	PostTags         []string  `json:"postTags"`
	PostLikeCount    int64     `json:"postLikeCount"`
	PostCommentCount int64     `json:"postCommentCount"`
	PostDateCreated  time.Time `json:"postDateCreated"`
	PostModifiedTime time.Time `json:"postModifiedTime"`
	PostEditedFlag   bool      `json:"postEditedFlag"`
	UserLikeStatus   bool      `json:"userLikeStatus"`
}

// NewPostDTO maps an annotated post to its response shape.
func NewPostDTO(v *PostView) PostDTO {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostDTO{
		PostID:           v.ID,
		PostAuthor:       v.Author,
		PostType:         string(v.Type),
		PostTitle:        v.Title,
		PostBody:         v.Body,
		PostTags:         tags,
		PostLikeCount:    v.LikeCount,
		PostCommentCount: v.CommentCount,
		PostDateCreated:  v.DateCreated,
		PostModifiedTime: v.ModifiedTime,
		PostEditedFlag:   v.EditedFlag,
		UserLikeStatus:   v.LikedByViewer,
	}
}

// NewPostDTOs maps a page of posts.
func NewPostDTOs(vs []PostView) []PostDTO {
	out := make([]PostDTO, 0, len(vs))
	for i := range vs {
		out = append(out, NewPostDTO(&vs[i]))
	}
	return out
}

// SortType orders post search results.
type SortType string

const (
	SortHot SortType = "SORT_HOT"
	SortNew SortType = "SORT_NEW"
	SortTop SortType = "SORT_TOP"
)

// Valid reports whether s is a known sort.
func (s SortType) Valid() bool {
	return s == SortHot || s == SortNew || s == SortTop
}
