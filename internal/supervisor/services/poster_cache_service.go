// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CachePruner drops expired entries and reports how many it removed.
// *tmdb.Resolver implements it.
type CachePruner interface {
	PruneCache() int
}

// PosterCacheService periodically evicts expired poster lookups so memory
// held by entries nobody asks for again is returned before LRU pressure
// would push them out.
type PosterCacheService struct {
	pruner   CachePruner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewPosterCacheService creates the janitor. A non-positive interval means
// 10 minutes.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewPosterCacheService(pruner CachePruner, interval time.Duration, logger zerolog.Logger) *PosterCacheService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &PosterCacheService{
		pruner:   pruner,
		interval: interval,
		logger:   logger.With().Str("service", "poster-cache").Logger(),
		name:     "poster-cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *PosterCacheService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("poster cache janitor running")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if removed := s.pruner.PruneCache(); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("expired poster lookups pruned")
			}
		}
	}
}

// String returns the service name for logging.
func (s *PosterCacheService) String() string {
	return s.name
}
