// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package api

import (
	"net/http"
	"time"
)

// PosterHealth describes the poster resolver in a readiness report.
type PosterHealth struct {
	Enabled      bool    `json:"enabled"`
	BreakerState string  `json:"breaker_state,omitempty"`
	CacheEntries int     `json:"cache_entries"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}

// ReadyStatus is the payload of the readiness probe.
type ReadyStatus struct {
	Ready   bool           `json:"ready"`
	Tables  map[string]int `json:"tables,omitempty"`
	Posters PosterHealth   `json:"posters"`
	Uptime  float64        `json:"uptime_seconds"`
}

// HealthLive answers 200 while the process is up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 once the dataset is loaded and 503 before. Poster
// degradation never makes the service unready; it is reported for operators.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats := h.posters.CacheStats()
	status := ReadyStatus{
		Posters: PosterHealth{
			Enabled:      h.posters.Enabled(),
			BreakerState: h.posters.BreakerState(),
			CacheEntries: stats.Size,
			CacheHitRate: stats.HitRate(),
		},
		Uptime: time.Since(h.startTime).Seconds(),
	}

	ds := h.data.Dataset()
	if ds == nil {
		NewResponseWriter(w, r).Unavailable("Dataset not loaded", status)
		return
	}

	status.Ready = true
	status.Tables = ds.Stats()
	NewResponseWriter(w, r).Success(status)
}
