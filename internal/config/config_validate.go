// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelview/internal/logging"
)

// Validate checks the loaded configuration. The first failing section is reported.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateData,
		c.validateTMDB,
		c.validateUI,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// validateData requires every table file to be named.
func (c *Config) validateData() error {
	files := map[string]string{
		"RATINGS_FILE": c.Data.RatingsFile,
		"MOVIES_FILE":  c.Data.MoviesFile,
		"LINKS_FILE":   c.Data.LinksFile,
		"RECS_FILE":    c.Data.RecsFile,
	}
	for name, value := range files {
		if value == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// validateTMDB validates the poster service settings. URLs are checked even
// when lookups are disabled so a later enable does not surface a typo.
func (c *Config) validateTMDB() error {
	if err := validateServiceURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateServiceURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return errors.New("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return errors.New("TMDB_RATE_LIMIT must be positive")
	}
	if c.TMDB.Burst < 1 {
		return errors.New("TMDB_BURST must be at least 1")
	}
	if c.TMDB.CacheTTL <= 0 {
		return errors.New("TMDB_CACHE_TTL must be positive")
	}
	if c.TMDB.CacheSize < 1 {
		return errors.New("TMDB_CACHE_SIZE must be at least 1")
	}
	return nil
}

// Score and limit bounds of the sidebar controls.
const (
	MinScoreFloor = 0.0
	MinScoreCeil  = 5.0
	maxLimitCeil  = 1000
)

func (c *Config) validateUI() error {
	if c.UI.DefaultMinScore < MinScoreFloor || c.UI.DefaultMinScore > MinScoreCeil {
		return fmt.Errorf("UI_DEFAULT_MIN_SCORE must be between %.1f and %.1f", MinScoreFloor, MinScoreCeil)
	}
	if c.UI.MaxLimit < 1 || c.UI.MaxLimit > maxLimitCeil {
		return fmt.Errorf("UI_MAX_LIMIT must be between 1 and %d", maxLimitCeil)
	}
	if c.UI.DefaultLimit < 1 || c.UI.DefaultLimit > c.UI.MaxLimit {
		return fmt.Errorf("UI_DEFAULT_LIMIT must be between 1 and UI_MAX_LIMIT (%d)", c.UI.MaxLimit)
	}
	if c.UI.CardsPerRow < 1 {
		return errors.New("UI_CARDS_PER_ROW must be at least 1")
	}
	return nil
}

// validEnvironments defines the allowed ENVIRONMENT values
var validEnvironments = map[string]bool{
	"development": true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limiting bounds. Disabled rate limiting
// skips the bounds check.
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true when a production deployment still
// accepts any origin. The server logs this at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
