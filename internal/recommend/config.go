// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package recommend

import "fmt"

// Config contains the operational limits of the pipelines.
type Config struct {
	// DefaultLimit is the result count callers use when none is given.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps Request.Limit.
	// Default: 100.
	MaxLimit int `json:"max_limit"`

	// MaxScore is the top of the score scale used by threshold validation.
	// Default: 5.0.
	MaxScore float64 `json:"max_score"`
}

// DefaultConfig returns the limits of the MovieLens browser UI.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit: 10,
		MaxLimit:     100,
		MaxScore:     5.0,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be positive, got %d", c.MaxLimit)
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default_limit must be in [1, %d], got %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.MaxScore <= 0 {
		return fmt.Errorf("max_score must be positive, got %f", c.MaxScore)
	}
	return nil
}
