// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package api exposes Murmur over HTTP.

Routes are mounted under /api on a Chi router. Every response body is a JSON
object carrying an actionResult field: "SUCCESS" or an ERR_* code. Errors
from the services are classified in one place, respondError, which maps the
error taxonomy of the models package onto status codes:

	*models.ValidationError   400  ERR_INVALID_PROPERTIES + invalidProperties
	*models.ConflictError     400  ERR_ALREADY_LIKED, ERR_NOT_FOLLOWED, ...
	*models.AuthError         401  ERR_NO_TOKEN, ERR_INVALID_TOKEN, ERR_AUTH_EXPIRED
	models.ErrForbidden       403  ERR_INSUFFICIENT_PERMS
	models.ErrInactiveUser    403  ERR_INACTIVE_USER
	models.ErrNotFound        404  ERR_NOT_FOUND
	anything else             500  ERR_INTERNAL_ERROR (logged)

# Middleware

The global stack is request id, CORS, Prometheus metrics, per-IP rate
limiting (separate read and write budgets), Cache-Control: no-cache and
gzip. Reads accept an optional bearer token; mutations require one and
additionally require an activated account.

# Pagination

Page parameters (feedPage, commentPage, likePage, ...) are 1-based and
default to 1 when absent. A present value that is not a positive integer
is reported as an invalid property named after the parameter.
*/
package api
