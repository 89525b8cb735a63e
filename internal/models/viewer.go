// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

// Viewer is the resolved identity making a request. Read paths accept a nil
// *Viewer for anonymous callers.
type Viewer struct {
	Username string
}

// NewViewer returns nil for an empty username.
func NewViewer(username string) *Viewer {
	if username == "" {
		return nil
	}
	return &Viewer{Username: username}
}

// Name returns the username, or "" for an anonymous viewer.
func (v *Viewer) Name() string {
	if v == nil {
		return ""
	}
	return v.Username
}
