// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors register with the default registry through promauto, so
// importing the package is enough to expose them:
//
//   - HTTP: request counts, latency and in-flight requests per route pattern
//   - Dataset: rows per table and load duration
//   - Pipelines: recommendation and history latency
//   - Posters: lookups by outcome, latency and cache efficiency
//   - Circuit breaker: state, requests and transitions of the metadata client
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Dataset Metrics
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Rows loaded per table (ratings, movies, links, recommendations, users)",
		},
		[]string{"table"},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent reading and indexing the CSV tables",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "Duration of one pipeline evaluation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"pipeline"}, // "recommendations", "history"
	)

	// Poster Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Poster lookups by outcome",
		},
		[]string{"status"}, // "found", "missing", "unavailable", "failed", "skipped"
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_lookup_duration_seconds",
			Help:    "Duration of poster lookups that reached the metadata service",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PosterCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_hits_total",
			Help: "Total number of poster cache hits",
		},
	)

	PosterCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cache_misses_total",
			Help: "Total number of poster cache misses",
		},
	)

	PosterCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "poster_cache_entries",
			Help: "Current number of cached poster results",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPosterLookup counts one poster resolution. duration is only observed
// for lookups that went to the network.
func RecordPosterLookup(status string, duration time.Duration, network bool) {
	PosterLookups.WithLabelValues(status).Inc()
	if network {
		PosterLookupDuration.Observe(duration.Seconds())
	}
}

// RecordPosterCache records a poster cache access and the current size.
func RecordPosterCache(hit bool, size int) {
	if hit {
		PosterCacheHits.Inc()
	} else {
		PosterCacheMisses.Inc()
	}
	PosterCacheEntries.Set(float64(size))
}
