// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Package recommend samples "accounts you might know".
//
// # Tiers
//
// A sample is drawn from an ordered list of tiers. Each tier is a named
// candidate query; the first tier that yields at least one account wins and
// later tiers are not consulted. Two lists exist:
//
//   - personalized, for viewers following at least one account:
//     friends-of-follows, then popular-unfollowed
//   - cold start, for anonymous viewers and viewers following nobody:
//     recent-follow-targets, then popular
//
// Personalized tiers never suggest the viewer or accounts the viewer already
// follows. Cold-start tiers never suggest the viewer.
//
// The sampler never fails on an empty system: if no tier yields anything the
// result is an empty slice.
package recommend
