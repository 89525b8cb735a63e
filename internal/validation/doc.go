// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared; it caches struct
// metadata, so it is safe and cheap to call from every request.
//
// Field names in errors are the struct's JSON names, which lets the API
// report failed properties under the names clients sent:
//
//	type createCommentRequest struct {
//	    CommentBody string `json:"commentBody" validate:"notblank"`
//	    CommentType string `json:"commentType" validate:"commenttype"`
//	}
//
//	if err := validation.Validate(&req); err != nil {
//	    return err // *models.ValidationError{Fields: ["commentBody"]}
//	}
//
// # Custom Tags
//
//   - notblank: string with at least one non-space character
//   - posttype: TEXT_POST, LINK_POST, IMAGE_POST or VIDEO_POST
//   - commenttype: ROOT or REPLY
//   - sorttype: SORT_HOT, SORT_NEW or SORT_TOP
//   - publicurl: absolute http(s) URL that does not point at localhost
package validation
