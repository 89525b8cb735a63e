// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package recommend

import (
	"context"
)

// Tier names.
const (
	TierFriendsOfFollows    = "friends-of-follows"
	TierPopularUnfollowed   = "popular-unfollowed"
	TierRecentFollowTargets = "recent-follow-targets"
	TierPopular             = "popular"
)

// CandidateFunc returns up to limit usernames for viewer, best first.
// viewer is "" for anonymous requests.
type CandidateFunc func(ctx context.Context, viewer string, limit int) ([]string, error)

// Tier is one named candidate source.
type Tier struct {
	Name       string
	Candidates CandidateFunc
}

// CandidateStore provides the tier queries.
type CandidateStore interface {
	FriendsOfFollows(ctx context.Context, viewer string, limit int) ([]string, error)
	PopularUnfollowed(ctx context.Context, viewer string, limit int) ([]string, error)
	RecentFollowTargets(ctx context.Context, exclude string, limit int) ([]string, error)
	PopularProfiles(ctx context.Context, exclude string, limit int) ([]string, error)
}

// PersonalizedTiers are used for viewers that follow someone.
func PersonalizedTiers(s CandidateStore) []Tier {
	return []Tier{
		{Name: TierFriendsOfFollows, Candidates: s.FriendsOfFollows},
		{Name: TierPopularUnfollowed, Candidates: s.PopularUnfollowed},
	}
}

// ColdStartTiers are used for anonymous viewers and viewers that follow
// nobody.
func ColdStartTiers(s CandidateStore) []Tier {
	return []Tier{
		{Name: TierRecentFollowTargets, Candidates: s.RecentFollowTargets},
		{Name: TierPopular, Candidates: s.PopularProfiles},
	}
}

// firstNonEmpty runs tiers in order and returns the first non-empty result
// with the name of the tier that produced it.
func firstNonEmpty(ctx context.Context, tiers []Tier, viewer string, limit int) (string, []string, error) {
	for _, t := range tiers {
		names, err := t.Candidates(ctx, viewer, limit)
		if err != nil {
			return t.Name, nil, err
		}
		if len(names) > 0 {
			return t.Name, dedupe(names, limit), nil
		}
	}
	return "", nil, nil
}

// dedupe keeps the first occurrence of each name, up to limit.
func dedupe(names []string, limit int) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out
}
