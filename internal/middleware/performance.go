// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelview/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged
// at warn level. A page render with cold poster lookups is the usual culprit.
const DefaultSlowRequestThreshold = time.Second

// RequestLogger logs each completed request through the request-scoped
// logger: debug normally, warn above slowThreshold, error for 5xx.
func RequestLogger(slowThreshold time.Duration) func(http.Handler) http.Handler {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := newStatusWriter(w)

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case duration > slowThreshold:
				event = logger.Warn().Dur("threshold", slowThreshold)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Msg("request completed")
		})
	}
}
