// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package models

import "math"

// maxOffset bounds row offsets handed to the database. DuckDB rejects
// OFFSET values above 2^62.
const maxOffset = math.MaxInt64 / 2

// PageOffset returns the row offset of 1-based page for pages of size rows.
// ok is false when the offset lies past any row the database can hold, in
// which case the page is empty and need not be queried.
func PageOffset(page, size int) (offset int, ok bool) {
	if page < 1 || size < 1 {
		return 0, page >= 1
	}
	if page-1 > maxOffset/size {
		return 0, false
	}
	return (page - 1) * size, true
}
