// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

import "time"

// EntityKind names a likeable entity.
type EntityKind int

const (
	KindPost EntityKind = iota + 1
	KindComment
)

func (k EntityKind) String() string {
	switch k {
	case KindPost:
		return "post"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// LikeEntry is a row of post_likes or comment_likes as listed to clients.
type LikeEntry struct {
	Username string    `db:"username"`
	LikedAt  time.Time `db:"liked_at"`
}

// LikeDTO is one entry of a post's like list.
type LikeDTO struct {
	UserName string    `json:"userName"`
	LikedAt  time.Time `json:"likedAt"`
}

// NewLikeDTOs maps like entries.
func NewLikeDTOs(es []LikeEntry) []LikeDTO {
	out := make([]LikeDTO, 0, len(es))
	for _, e := range es {
		out = append(out, LikeDTO{UserName: e.Username, LikedAt: e.LikedAt})
	}
	return out
}
