// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelview/config.yaml",
	"/etc/reelview/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         ".",
			RatingsFile: "ml-latest-small/ratings.csv",
			MoviesFile:  "ml-latest-small/movies.csv",
			LinksFile:   "ml-latest-small/links.csv",
			RecsFile:    "recs.csv",
		},
		TMDB: TMDBConfig{
			Enabled:           true, // still requires TMDB_API_KEY
			APIKey:            "",
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w200",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 40,
			Burst:             10,
			CacheTTL:          6 * time.Hour,
			CacheSize:         5000,
		},
		UI: UIConfig{
			PageTitle:       "MovieLens ALS Recommender System",
			DefaultMinScore: 0.0,
			DefaultLimit:    10,
			MaxLimit:        100,
			CardsPerRow:     5,
		},
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
//
// Precedence is ENV > File > Defaults. The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Environment variables
	// TMDB_API_KEY -> tmdb.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ConfigFile returns the configuration file Load reads, or "" when
// configuration comes from defaults and environment only.
func ConfigFile() string {
	return findConfigFile()
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML lists arrive as slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps supported environment variables (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Data files
	"data_dir":     "data.dir",
	"ratings_file": "data.ratings_file",
	"movies_file":  "data.movies_file",
	"links_file":   "data.links_file",
	"recs_file":    "data.recs_file",

	// Poster metadata service
	"tmdb_enabled":        "tmdb.enabled",
	"tmdb_api_key":        "tmdb.api_key",
	"tmdb_base_url":       "tmdb.base_url",
	"tmdb_image_base_url": "tmdb.image_base_url",
	"tmdb_timeout":        "tmdb.timeout",
	"tmdb_rate_limit":     "tmdb.requests_per_second",
	"tmdb_burst":          "tmdb.burst",
	"tmdb_cache_ttl":      "tmdb.cache_ttl",
	"tmdb_cache_size":     "tmdb.cache_size",

	// UI defaults
	"ui_page_title":        "ui.page_title",
	"ui_default_min_score": "ui.default_min_score",
	"ui_default_limit":     "ui.default_limit",
	"ui_max_limit":         "ui.max_limit",
	"ui_cards_per_row":     "ui.cards_per_row",

	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so the process environment
// cannot pollute the configuration.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - HTTP_PORT -> server.port
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The caller is responsible for synchronising access to configuration
// swapped in from the callback.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
