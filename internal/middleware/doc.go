// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package middleware holds the net/http middleware shared by every API
// route: request ids wired into the logging context, Prometheus request
// metrics keyed by chi route pattern, gzip compression and the no-cache
// header. All of them have the chi signature func(http.Handler) http.Handler.
package middleware
