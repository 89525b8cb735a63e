// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/murmur/internal/metrics"
	"github.com/tomtom215/murmur/internal/models"
)

// DefaultLimit is the maximum number of suggested accounts.
const DefaultLimit = 5

// Store is everything the sampler reads.
type Store interface {
	CandidateStore
	FollowingCount(ctx context.Context, username string) (int64, error)
	ProfilesByUsernames(ctx context.Context, usernames []string) ([]models.Profile, error)
}

// Sampler picks accounts to suggest to a viewer. It is safe for concurrent
// use.
type Sampler struct {
	store        Store
	limit        int
	personalized []Tier
	coldStart    []Tier
	logger       zerolog.Logger
}

// NewSampler creates a sampler returning at most limit profiles. A
// non-positive limit means DefaultLimit.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSampler(store Store, limit int, logger zerolog.Logger) *Sampler {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Sampler{
		store:        store,
		limit:        limit,
		personalized: PersonalizedTiers(store),
		coldStart:    ColdStartTiers(store),
		logger:       logger.With().Str("component", "recommend").Logger(),
	}
}

// Sample returns up to the configured number of profiles for viewer, in
// tier order.
func (s *Sampler) Sample(ctx context.Context, viewer *models.Viewer) ([]models.Profile, error) {
	tiers := s.coldStart
	name := viewer.Name()
	if viewer != nil {
		n, err := s.store.FollowingCount(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("count follows: %w", err)
		}
		if n > 0 {
			tiers = s.personalized
		}
	}

	tier, names, err := firstNonEmpty(ctx, tiers, name, s.limit)
	if err != nil {
		return nil, fmt.Errorf("tier %s: %w", tier, err)
	}
	if len(names) == 0 {
		metrics.RecordRecommendationTier("none")
		return []models.Profile{}, nil
	}

	profiles, err := s.store.ProfilesByUsernames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("expand profiles: %w", err)
	}

	metrics.RecordRecommendationTier(tier)
	s.logger.Debug().
		Str("viewer", name).
		Str("tier", tier).
		Int("returned", len(profiles)).
		Msg("recommendation sample")
	return profiles, nil
}
