// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package config provides centralized configuration management for Reelview.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then a fixed set of environment variables. Only mapped variables
are read; anything else in the process environment is ignored.

# Configuration File

The first existing file wins:

  - $CONFIG_PATH
  - config.yaml, config.yml
  - /etc/reelview/config.yaml, /etc/reelview/config.yml

Example:

	data:
	  dir: /srv/movielens
	  recs_file: recs.csv
	tmdb:
	  api_key: "..."
	  cache_ttl: 6h
	ui:
	  default_limit: 20
	server:
	  port: 8501

# Environment Variables

Data:
  - DATA_DIR, RATINGS_FILE, MOVIES_FILE, LINKS_FILE, RECS_FILE

Poster service:
  - TMDB_ENABLED (default: true), TMDB_API_KEY (posters are off without it)
  - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL
  - TMDB_TIMEOUT (default: 10s), TMDB_RATE_LIMIT (default: 40/s), TMDB_BURST
  - TMDB_CACHE_TTL (default: 6h), TMDB_CACHE_SIZE (default: 5000)

UI:
  - UI_PAGE_TITLE, UI_DEFAULT_MIN_SCORE, UI_DEFAULT_LIMIT, UI_MAX_LIMIT, UI_CARDS_PER_ROW

Server and security:
  - HTTP_HOST, HTTP_PORT (default: 8501), HTTP_TIMEOUT, ENVIRONMENT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS (comma-separated)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load returns an error for malformed service URLs, out-of-range numbers and
unknown enum values so the server fails fast at startup.
*/
package config
