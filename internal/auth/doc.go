// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package auth resolves the viewer of a request from a bearer token.

Tokens are issued by the identity service and verified here with a shared
HS256 secret. A token is accepted when its signature verifies, its
tokenType claim is "AUTH", and it was issued within the configured maximum
age. The userName claim names the viewer.

Two middlewares are provided:

  - Optional: a missing or unusable token leaves the request anonymous.
  - Required: a missing token is ERR_NO_TOKEN, a bad one ERR_INVALID_TOKEN,
    an old one ERR_AUTH_EXPIRED; all respond 401.

Handlers read the viewer with ViewerFromContext, which returns nil for
anonymous requests:

	r.With(authMW.Required).Post("/posts", h.CreatePost)

	func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	    viewer := auth.ViewerFromContext(r.Context())
	    ...
	}
*/
package auth
