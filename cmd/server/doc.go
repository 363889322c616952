// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package main is the entry point for the Reelview server.

Reelview browses precomputed MovieLens recommendations. It loads the ratings,
movies, links and recommendation CSV files once, then serves an HTML page
that shows a user's top recommendations next to their rating history, plus
a small JSON API over the same data. Posters come from TMDB when an API key
is configured.

# Startup Order

 1. Configuration: koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console output
 3. Dataset: all four CSV tables, parsed and indexed; any error is fatal
 4. Recommendation engine and poster resolver (client, breaker, cache)
 5. HTTP handler and chi router with the middleware stack
 6. Supervisor tree: suture v4 running the HTTP server and the poster
    cache janitor until SIGINT or SIGTERM

# Configuration

Precedence is environment over config file over defaults. The config file
is CONFIG_PATH, or config.yaml in the working directory when it exists.
Changes to that file reload the logging settings while running.

	# Data
	DATA_DIR=.                                  # base directory for relative file names
	RATINGS_FILE=ml-latest-small/ratings.csv
	MOVIES_FILE=ml-latest-small/movies.csv
	LINKS_FILE=ml-latest-small/links.csv
	RECS_FILE=recs.csv

	# Posters
	TMDB_API_KEY=<key>                          # posters are off without it
	TMDB_ENABLED=true
	TMDB_TIMEOUT=10s
	TMDB_RATE_LIMIT=40                          # requests per second
	TMDB_CACHE_TTL=6h

	# Page
	UI_DEFAULT_MIN_SCORE=0.0
	UI_DEFAULT_LIMIT=10
	UI_MAX_LIMIT=100

	# Server
	HTTP_PORT=8501
	HTTP_HOST=0.0.0.0
	ENVIRONMENT=development
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m
	CORS_ORIGINS=*
	LOG_LEVEL=info                              # trace, debug, info, warn, error
	LOG_FORMAT=json                             # json or console

# Usage

	export TMDB_API_KEY=...
	./reelview

	open http://localhost:8501/?user=1&min_score=3.5&limit=10
*/
package main
