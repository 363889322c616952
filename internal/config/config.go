// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Data: locations of the four flat files (ratings, movies, links, recs)
//  2. TMDB: poster metadata service, rate limiting and result caching
//  3. UI: page title and the defaults of the sidebar controls
//  4. Server & Security: HTTP listener, rate limiting and CORS
//  5. Logging: level, format and caller reporting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	srv := &http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	Data     DataConfig     `koanf:"data"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	UI       UIConfig       `koanf:"ui"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig names the CSV inputs. File names are resolved against Dir
// unless they are absolute.
type DataConfig struct {
	Dir         string `koanf:"dir"`
	RatingsFile string `koanf:"ratings_file"`
	MoviesFile  string `koanf:"movies_file"`
	LinksFile   string `koanf:"links_file"`
	RecsFile    string `koanf:"recs_file"`
}

// TMDBConfig configures poster lookups against the metadata service.
// Lookups are disabled when Enabled is false or APIKey is empty.
type TMDBConfig struct {
	Enabled           bool          `koanf:"enabled"`
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	CacheSize         int           `koanf:"cache_size"`
}

// PostersEnabled reports whether poster lookups should reach the network.
func (t TMDBConfig) PostersEnabled() bool {
	return t.Enabled && t.APIKey != ""
}

// UIConfig holds presentation defaults.
type UIConfig struct {
	PageTitle       string  `koanf:"page_title"`
	DefaultMinScore float64 `koanf:"default_min_score"`
	DefaultLimit    int     `koanf:"default_limit"`
	MaxLimit        int     `koanf:"max_limit"`
	CardsPerRow     int     `koanf:"cards_per_row"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development" or "production"
}

// SecurityConfig holds inbound request protection settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
