// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

import "time"

// CommentType distinguishes top-level comments from replies.
type CommentType string

const (
	CommentRoot  CommentType = "ROOT"
	CommentReply CommentType = "REPLY"
)

// Valid reports whether t is ROOT or REPLY.
func (t CommentType) Valid() bool {
	return t == CommentRoot || t == CommentReply
}

// Comment is a row of the comments table. ParentID is nil for ROOT comments.
type Comment struct {
	ID           int64       `db:"comment_id"`
	Author       string      `db:"comment_author"`
	PostID       int64       `db:"comment_parent_post"`
	Type         CommentType `db:"comment_type"`
	Body         string      `db:"comment_body"`
	ParentID     *int64      `db:"comment_reply_parent"`
	LikeCount    int64       `db:"comment_like_count"`
	ReplyCount   int64       `db:"comment_reply_count"`
	DateCreated  time.Time   `db:"comment_date_created"`
	ModifiedTime time.Time   `db:"comment_modified_time"`
	EditedFlag   bool        `db:"comment_edited_flag"`
}

// CommentNode is a comment with its viewer like state and fully expanded
// replies. Children are ordered by creation time, then id.
type CommentNode struct {
	Comment
	LikedByViewer bool
	Children      []*CommentNode
}

// CommentDTO is the wire shape of a comment tree node.
type CommentDTO struct {
	CommentID           int64         `json:"commentId"`
	CommentAuthor       string        `json:"commentAuthor"`
	CommentParentPost   int64         `json:"commentParentPost"`
	CommentType         string        `json:"commentType"`
	CommentBody         string        `json:"commentBody"`
	CommentReplyParent  *int64        `json:"commentReplyParent"`
	CommentLikeCount    int64         `json:"commentLikeCount"`
	CommentReplyCount   int64         `json:"commentReplyCount"`
	CommentDateCreated  time.Time     `json:"commentDateCreated"`
	CommentModifiedTime time.Time     `json:"commentModifiedTime"`
	CommentEditedFlag   bool          `json:"commentEditedFlag"`
	UserLikeStatus      bool          `json:"userLikeStatus"`
	ChildComments       []*CommentDTO `json:"childComments"`
}

// NewCommentDTO maps a single comment without children.
func NewCommentDTO(c *Comment, liked bool) *CommentDTO {
	return &CommentDTO{
		CommentID:           c.ID,
		CommentAuthor:       c.Author,
		CommentParentPost:   c.PostID,
		CommentType:         string(c.Type),
		CommentBody:         c.Body,
		CommentReplyParent:  c.ParentID,
		CommentLikeCount:    c.LikeCount,
		CommentReplyCount:   c.ReplyCount,
		CommentDateCreated:  c.DateCreated,
		CommentModifiedTime: c.ModifiedTime,
		CommentEditedFlag:   c.EditedFlag,
		UserLikeStatus:      liked,
		ChildComments:       []*CommentDTO{},
	}
}

// NewCommentTreeDTO maps a whole tree. It walks the tree with an explicit
// stack so depth is bounded by heap, not goroutine stack.
func NewCommentTreeDTO(root *CommentNode) *CommentDTO {
	type pair struct {
		src *CommentNode
		dst *CommentDTO
	}

	out := NewCommentDTO(&root.Comment, root.LikedByViewer)
	stack := []pair{{root, out}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p.dst.ChildComments = make([]*CommentDTO, len(p.src.Children))
		for i, child := range p.src.Children {
			d := NewCommentDTO(&child.Comment, child.LikedByViewer)
			p.dst.ChildComments[i] = d
			stack = append(stack, pair{child, d})
		}
	}
	return out
}

// NewCommentForestDTO maps a page of root nodes.
func NewCommentForestDTO(roots []*CommentNode) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(roots))
	for _, r := range roots {
		out = append(out, NewCommentTreeDTO(r))
	}
	return out
}

// NewCommentDTOs maps flat comment rows, e.g. a user's comment history.
func NewCommentDTOs(cs []Comment) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(cs))
	for i := range cs {
		out = append(out, NewCommentDTO(&cs[i], false))
	}
	return out
}
