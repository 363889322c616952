// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyLogger
)

// GenerateRequestID returns a random UUID for requests that arrive without
// an X-Request-ID header.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithRequestID tags ctx so that Ctx adds request_id to every entry.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// ContextWithLogger makes Ctx use logger instead of the global one.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// Ctx returns the logger for ctx with request_id attached when present.
//
//	logging.Ctx(ctx).Warn().Int64("tmdb_id", id).Msg("Poster lookup degraded")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger, ok := ctx.Value(keyLogger).(zerolog.Logger)
	if !ok {
		logger = Logger()
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	return &logger
}
