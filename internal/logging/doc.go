// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package logging provides the zerolog-based structured logger shared by every
// Murmur component.
//
// A single global zerolog.Logger is configured once at startup from the
// logging section of the configuration and then accessed through the level
// helpers (Info, Warn, Error, ...). Request-scoped code should prefer Ctx,
// which attaches the request and correlation identifiers stored on the
// context by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Info().Int64("post_id", id).Msg("Comment created")
//
// # Configuration
//
//	logging:
//	  level: info      # trace, debug, info, warn, error, fatal, panic, disabled
//	  format: json     # json or console
//	  caller: false
//
// The same values can be supplied through LOG_LEVEL, LOG_FORMAT and
// LOG_CALLER.
//
// # slog bridge
//
// Supervisor events are emitted by sutureslog through log/slog. NewSlogLogger
// returns a *slog.Logger whose handler writes to the global zerolog logger so
// all output shares one format.
package logging
