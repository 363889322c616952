// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package tmdb

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/reelview/internal/cache"
	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/metrics"
)

// Status classifies the outcome of a poster lookup.
type Status string

const (
	// StatusFound means URL holds the poster image.
	StatusFound Status = "found"
	// StatusMissing means there is no poster: the movie has no tmdbId, the
	// service answered 404, or the answer had no poster_path.
	StatusMissing Status = "missing"
	// StatusUnavailable means the service could not be asked or did not
	// answer usefully: lookups disabled, transport error, timeout, open
	// circuit, non-404 error status or an unreadable body.
	StatusUnavailable Status = "unavailable"
	// StatusFailed means an error outside the known failure classes. It is
	// logged at error level since it usually points at a bug.
	StatusFailed Status = "failed"
)

// Poster is the typed result of Resolve. Only StatusFound carries a URL.
type Poster struct {
	Status Status `json:"status"`
	URL    string `json:"url,omitempty"`
	Cached bool   `json:"cached"`
	Err    error  `json:"-"`
}

// OK reports whether a poster image was found.
func (p Poster) OK() bool {
	return p.Status == StatusFound && p.URL != ""
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// ImageBaseURL is prepended to poster_path, e.g. https://image.tmdb.org/t/p/w200
	ImageBaseURL string
	// CacheTTL and CacheSize bound the memo of found/missing results.
	// A zero CacheSize disables memoization.
	CacheTTL  time.Duration
	CacheSize int
}

// Resolver turns optional tmdb ids into poster URLs. It never returns an
// error: every failure is folded into Poster.Status.
//
// Found and missing results are cached; degraded results are not, so the
// next render retries. Concurrent lookups of the same id share one request.
type Resolver struct {
	fetcher   Fetcher
	imageBase string
	cache     *cache.LRU[int64, Poster]
	group     singleflight.Group
}

// NewResolver creates a resolver. A nil fetcher yields a resolver that
// answers StatusUnavailable for every id without network access, which is
// how poster lookups are switched off.
func NewResolver(fetcher Fetcher, cfg ResolverConfig) *Resolver {
	r := &Resolver{fetcher: fetcher, imageBase: cfg.ImageBaseURL}
	if cfg.CacheSize > 0 {
		r.cache = cache.NewLRU[int64, Poster](cfg.CacheSize, cfg.CacheTTL)
	}
	return r
}

// Enabled reports whether lookups can reach the metadata service.
func (r *Resolver) Enabled() bool {
	return r.fetcher != nil
}

// Resolve looks up the poster of tmdbID. A nil id answers StatusMissing
// without any network call.
func (r *Resolver) Resolve(ctx context.Context, tmdbID *int64) Poster {
	if tmdbID == nil {
		metrics.RecordPosterLookup("skipped", 0, false)
		return Poster{Status: StatusMissing}
	}
	if r.fetcher == nil {
		metrics.RecordPosterLookup("skipped", 0, false)
		return Poster{Status: StatusUnavailable}
	}

	id := *tmdbID
	if r.cache != nil {
		p, ok := r.cache.Get(id)
		metrics.RecordPosterCache(ok, r.cache.Len())
		if ok {
			p.Cached = true
			metrics.RecordPosterLookup(string(p.Status), 0, false)
			return p
		}
	}

	v, _, _ := r.group.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		return r.fetch(ctx, id), nil
	})
	p, _ := v.(Poster)
	return p
}

// fetch performs one lookup and records it. It runs inside singleflight.
func (r *Resolver) fetch(ctx context.Context, id int64) Poster {
	// Shared by every waiter of this singleflight key, so one caller going
	// away must not fail the others. The client timeout still bounds it.
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	path, err := r.fetcher.PosterPath(ctx, id)
	elapsed := time.Since(start)

	p := r.classify(path, err)
	metrics.RecordPosterLookup(string(p.Status), elapsed, true)

	logger := logging.Ctx(ctx)
	switch p.Status {
	case StatusFailed:
		logger.Error().Err(err).Int64("tmdb_id", id).Msg("Poster lookup failed unexpectedly")
	case StatusUnavailable:
		logger.Warn().Err(err).Int64("tmdb_id", id).Dur("duration", elapsed).Msg("Poster lookup degraded")
	default:
		logger.Debug().Int64("tmdb_id", id).Str("status", string(p.Status)).Dur("duration", elapsed).Msg("Poster lookup")
	}

	if r.cache != nil && (p.Status == StatusFound || p.Status == StatusMissing) {
		r.cache.Set(id, p)
	}
	return p
}

// classify maps a fetch outcome onto a Poster. Only the failure classes a
// remote lookup is expected to produce become StatusUnavailable.
func (r *Resolver) classify(path string, err error) Poster {
	if err == nil {
		if path == "" {
			return Poster{Status: StatusMissing}
		}
		return Poster{Status: StatusFound, URL: r.imageBase + path}
	}

	var (
		statusErr *StatusError
		urlErr    *url.Error
		netErr    net.Error
	)
	switch {
	case errors.As(err, &statusErr) && statusErr.NotFound():
		return Poster{Status: StatusMissing}
	case errors.As(err, &statusErr),
		errors.As(err, &urlErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, ErrDecode),
		errors.Is(err, ErrRateLimited),
		IsRejected(err):
		return Poster{Status: StatusUnavailable, Err: err}
	default:
		return Poster{Status: StatusFailed, Err: err}
	}
}

// PruneCache drops expired cache entries and returns how many it removed.
func (r *Resolver) PruneCache() int {
	if r.cache == nil {
		return 0
	}
	removed := r.cache.CleanupExpired()
	metrics.PosterCacheEntries.Set(float64(r.cache.Len()))
	return removed
}

// CacheStats returns the poster cache counters.
func (r *Resolver) CacheStats() cache.Stats {
	if r.cache == nil {
		return cache.Stats{}
	}
	return r.cache.Stats()
}

// BreakerState returns the circuit state of the fetcher, or "" when the
// fetcher has no breaker.
func (r *Resolver) BreakerState() string {
	if s, ok := r.fetcher.(interface{ StateName() string }); ok {
		return s.StateName()
	}
	return ""
}
