// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package models defines the data structures shared by Murmur's storage,
service and HTTP layers.

Two families of types live here:

  - Storage rows (Profile, Post, Comment, FollowEntry, LikeEntry). Field tags
    use the snake_case column names of the DuckDB schema and are scanned with
    sqlx.
  - Response DTOs (ProfileDTO, PostDTO, CommentDTO, ...). Field tags use the
    camelCase names clients consume.

Rows are never serialized directly. Each DTO has a constructor (NewPostDTO,
NewCommentDTO, ...) that copies fields one by one, so the wire name of every
column is visible in a single place and covered by tests.

The error taxonomy used across services (ValidationError, ConflictError,
NotFoundError and the Err* sentinels) is defined in errors.go.
*/
package models
