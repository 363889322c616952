// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package main

import (
	"github.com/tomtom215/reelview/internal/config"
	"github.com/tomtom215/reelview/internal/dataset"
	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/recommend"
	"github.com/tomtom215/reelview/internal/tmdb"
)

func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	return lc
}

// watchLoggingConfig re-applies the logging section when the configuration
// file changes. Everything else is read once and needs a restart.
func watchLoggingConfig(path string) {
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid configuration change")
			return
		}
		logging.Init(loggingConfig(cfg))
		logging.Info().
			Str("path", path).
			Str("level", cfg.Logging.Level).
			Msg("Configuration file changed; logging settings reloaded, other changes apply on restart")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Configuration file watch unavailable")
	}
}

func datasetFiles(dc config.DataConfig) dataset.Files {
	return dataset.Files{
		Dir:     dc.Dir,
		Ratings: dc.RatingsFile,
		Movies:  dc.MoviesFile,
		Links:   dc.LinksFile,
		Recs:    dc.RecsFile,
	}
}

func engineConfig(uc config.UIConfig) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.DefaultLimit = uc.DefaultLimit
	rc.MaxLimit = uc.MaxLimit
	rc.MaxScore = config.MinScoreCeil
	return rc
}

// newPosterResolver builds client, breaker and resolver. Without an API key
// the resolver answers every lookup as unavailable without network access.
func newPosterResolver(tc config.TMDBConfig) *tmdb.Resolver {
	rc := tmdb.ResolverConfig{
		ImageBaseURL: tc.ImageBaseURL,
		CacheTTL:     tc.CacheTTL,
		CacheSize:    tc.CacheSize,
	}
	if !tc.PostersEnabled() {
		return tmdb.NewResolver(nil, rc)
	}

	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL:           tc.BaseURL,
		APIKey:            tc.APIKey,
		Timeout:           tc.Timeout,
		RequestsPerSecond: tc.RequestsPerSecond,
		Burst:             tc.Burst,
	})
	return tmdb.NewResolver(tmdb.NewBreakerClient(client, tmdb.DefaultBreakerSettings()), rc)
}
