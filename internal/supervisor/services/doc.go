// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package services adapts Murmur components to suture.Service.
//
// HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into a
// context-driven Serve. EventsService does the same for the Start/Shutdown
// lifecycle of the activity event components. The outbox relay implements
// suture.Service itself and needs no wrapper.
package services
