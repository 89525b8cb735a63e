// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

import "time"

// Profile is a row of the profiles table. FollowerCount and FollowingCount
// are caches over profile_follows and are maintained by the follow and
// unfollow transactions.
type Profile struct {
	Username         string    `db:"username"`
	ProfileName      string    `db:"profile_name"`
	Description      string    `db:"profile_description"`
	AvatarURL        string    `db:"avatar_url"`
	FollowerCount    int64     `db:"follower_count"`
	FollowingCount   int64     `db:"following_count"`
	AccountActivated bool      `db:"account_activated"`
	CreatedAt        time.Time `db:"created_at"`
}

// FollowEntry is one side of a follow edge as listed on a profile page.
type FollowEntry struct {
	Username    string    `db:"username"`
	FollowSince time.Time `db:"follow_since"`
}

// ProfileDTO is the public shape of a profile (recommendation cards,
// profile pages).
type ProfileDTO struct {
	Username           string `json:"username"`
	ProfileName        string `json:"profileName"`
	ProfileDescription string `json:"profileDescription"`
	AvatarURL          string `json:"avatarUrl"`
	FollowerCount      int64  `json:"followerCount"`
	FollowingCount     int64  `json:"followingCount"`
}

// NewProfileDTO maps a profile row to its response shape.
func NewProfileDTO(p *Profile) ProfileDTO {
	return ProfileDTO{
		Username:           p.Username,
		ProfileName:        p.ProfileName,
		ProfileDescription: p.Description,
		AvatarURL:          p.AvatarURL,
		FollowerCount:      p.FollowerCount,
		FollowingCount:     p.FollowingCount,
	}
}

// NewProfileDTOs maps a slice, never returning nil so JSON encodes [].
func NewProfileDTOs(ps []Profile) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(ps))
	for i := range ps {
		out = append(out, NewProfileDTO(&ps[i]))
	}
	return out
}

// ProfilePageDTO extends ProfileDTO with the viewer relationship and links
// to the paginated sub-resources.
type ProfilePageDTO struct {
	ProfileDTO
	FollowingUser  bool   `json:"followingUser"`
	FollowedByUser bool   `json:"followedByUser"`
	UserPosts      string `json:"userPosts"`
	UserComments   string `json:"userComments"`
	UserFollowers  string `json:"userFollowers"`
	UserFollowing  string `json:"userFollowing"`
}

// FollowerDTO lists an account following the profile.
type FollowerDTO struct {
	UserName      string    `json:"userName"`
	FollowerSince time.Time `json:"followerSince"`
}

// FollowingDTO lists an account the profile follows.
type FollowingDTO struct {
	UserName       string    `json:"userName"`
	FollowingSince time.Time `json:"followingSince"`
}

// NewFollowerDTOs maps follower entries.
func NewFollowerDTOs(es []FollowEntry) []FollowerDTO {
	out := make([]FollowerDTO, 0, len(es))
	for _, e := range es {
		out = append(out, FollowerDTO{UserName: e.Username, FollowerSince: e.FollowSince})
	}
	return out
}

// NewFollowingDTOs maps following entries.
func NewFollowingDTOs(es []FollowEntry) []FollowingDTO {
	out := make([]FollowingDTO, 0, len(es))
	for _, e := range es {
		out = append(out, FollowingDTO{UserName: e.Username, FollowingSince: e.FollowSince})
	}
	return out
}
