// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package middleware provides HTTP middleware shared by the page and the JSON API.

Key Components:

  - RequestID: X-Request-ID propagation into chi and the logging context
  - RequestLogger: per-request access log with slow-request warnings
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by route pattern
  - Compression: gzip for HTML, CSS and JSON responses

All components use the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(middleware.DefaultSlowRequestThreshold))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

PrometheusMetrics reads the matched route pattern after the handler returns,
so it must run inside the chi router rather than around it.
*/
package middleware
