// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package tmdb

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/metrics"
)

var _ Fetcher = (*BreakerClient)(nil)

// BreakerSettings tunes the circuit breaker in front of the metadata service.
type BreakerSettings struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts reset.
	Interval time.Duration
	// Timeout spent open before probing again.
	Timeout time.Duration
	// The breaker opens once MinRequests have been seen and the failure
	// ratio reaches FailureRatio.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 requests
// and probes again after 2 minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "tmdb-api",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerClient wraps a Fetcher with a circuit breaker so that an outage of
// the metadata service costs one fast rejection per card instead of one
// client timeout per card.
//
// A 404 and a cancelled caller are not failures: the service answered, or
// nobody is waiting for the answer.
type BreakerClient struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker[string]
	name string
}

// NewBreakerClient wraps next.
func NewBreakerClient(next Fetcher, s BreakerSettings) *BreakerClient {
	if s.Name == "" {
		s.Name = DefaultBreakerSettings().Name
	}
	name := s.Name

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening poster lookup circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && se.NotFound()
		},
	})

	return &BreakerClient{next: next, cb: cb, name: name}
}

// PosterPath calls the wrapped Fetcher unless the circuit is open, in which
// case it returns gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests.
func (b *BreakerClient) PosterPath(ctx context.Context, tmdbID int64) (string, error) {
	path, err := b.cb.Execute(func() (string, error) {
		return b.next.PosterPath(ctx, tmdbID)
	})

	if err != nil {
		if IsRejected(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		}
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return path, nil
}

// State returns the current circuit breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// StateName returns the state as "closed", "half-open" or "open".
func (b *BreakerClient) StateName() string {
	return stateToString(b.cb.State())
}

// IsRejected reports whether err came from an open or saturated breaker.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
