// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package posts

import (
	"strings"
	"unicode"

	"github.com/tomtom215/murmur/internal/models"
)

func isTagSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', '_', '-', ';', ':', '!', '?':
		return true
	}
	return false
}

// SplitTags lowercases s, splits it on whitespace and punctuation, and
// returns the distinct words in order of first appearance. limit <= 0
// returns every word.
func SplitTags(s string, limit int) []string {
	words := strings.FieldsFunc(strings.ToLower(s), isTagSeparator)
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Tags returns the tags of a post: the explicit tag string when it has any
// words, otherwise the leading words of the title.
func Tags(explicit, title string) []string {
	if tags := SplitTags(explicit, models.MaxPostTags); len(tags) > 0 {
		return tags
	}
	return SplitTags(title, models.MaxPostTags)
}
