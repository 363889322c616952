// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/metrics"
	"github.com/tomtom215/reelview/internal/models"
)

// Source is the read side of a loaded dataset. *dataset.Dataset implements it.
type Source interface {
	Movie(movieID int64) (models.Movie, bool)
	RatingsFor(userID int64) []models.Rating
	RecommendationsFor(userID int64) []models.Recommendation
}

// Request selects one user's recommendations.
type Request struct {
	UserID   int64
	MinScore float64
	// Limit <= 0 yields an empty result; values above MaxLimit are capped.
	Limit int
}

// Engine runs the recommendation and history pipelines over a Source.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	src    Source
	config *Config
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig.
func NewEngine(src Source, cfg *Config) (*Engine, error) {
	if src == nil {
		return nil, errors.New("recommend: nil source")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{src: src, config: cfg}, nil
}

// Config returns a copy of the engine's limits.
func (e *Engine) Config() Config {
	return *e.config
}

// Recommend returns the user's recommendations with score >= MinScore,
// joined with movie metadata, best first, at most Limit rows.
func (e *Engine) Recommend(ctx context.Context, req Request) []models.EnrichedRecommendation {
	start := time.Now()
	defer func() {
		metrics.PipelineDuration.WithLabelValues("recommendations").Observe(time.Since(start).Seconds())
	}()

	limit := req.Limit
	if limit > e.config.MaxLimit {
		limit = e.config.MaxLimit
	}
	if limit <= 0 {
		return []models.EnrichedRecommendation{}
	}

	rows := e.src.RecommendationsFor(req.UserID)
	out := make([]models.EnrichedRecommendation, 0, len(rows))
	unmatched := 0
	for _, r := range rows {
		// Written as a negated >= so NaN scores are dropped too.
		if !(r.Score >= req.MinScore) {
			continue
		}
		movie, ok := e.src.Movie(r.ItemID)
		if !ok {
			unmatched++
			continue
		}
		out = append(out, models.EnrichedRecommendation{
			UserID: r.UserID,
			ItemID: r.ItemID,
			Score:  r.Score,
			Title:  movie.Title,
			Genres: movie.Genres,
			TMDBID: movie.TMDBID,
		})
	}

	sortRecommendations(out)
	if len(out) > limit {
		out = out[:limit]
	}

	logging.Ctx(ctx).Debug().
		Int64("user_id", req.UserID).
		Float64("min_score", req.MinScore).
		Int("limit", limit).
		Int("candidates", len(rows)).
		Int("unmatched_items", unmatched).
		Int("returned", len(out)).
		Msg("recommendations computed")

	return out
}

// History returns the user's rated movies ordered by by. An unknown
// ordering falls back to rating descending.
func (e *Engine) History(ctx context.Context, userID int64, by models.HistorySort) []models.HistoryEntry {
	start := time.Now()
	defer func() {
		metrics.PipelineDuration.WithLabelValues("history").Observe(time.Since(start).Seconds())
	}()

	if !by.Valid() {
		by = models.HistoryRatingDesc
	}

	ratings := e.src.RatingsFor(userID)
	out := make([]models.HistoryEntry, 0, len(ratings))
	for _, r := range ratings {
		movie, ok := e.src.Movie(r.MovieID)
		if !ok {
			continue
		}
		out = append(out, models.HistoryEntry{MovieID: r.MovieID, Title: movie.Title, Rating: r.Rating})
	}

	sortHistory(out, by)

	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Str("sort", string(by)).
		Int("returned", len(out)).
		Msg("history computed")

	return out
}

// Search keeps entries whose title contains query, ignoring case. An empty
// query returns recs itself.
func Search(recs []models.EnrichedRecommendation, query string) []models.EnrichedRecommendation {
	if query == "" {
		return recs
	}
	needle := strings.ToLower(query)
	out := make([]models.EnrichedRecommendation, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Title), needle) {
			out = append(out, r)
		}
	}
	return out
}

func sortRecommendations(recs []models.EnrichedRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ItemID < recs[j].ItemID
	})
}

func sortHistory(entries []models.HistoryEntry, by models.HistorySort) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var c int
		switch by {
		case models.HistoryRatingAsc:
			c = compareFloat(a.Rating, b.Rating)
			if c == 0 {
				c = compareTitle(a, b)
			}
		case models.HistoryTitleAsc:
			c = compareTitle(a, b)
		case models.HistoryTitleDesc:
			c = -compareTitle(a, b)
		default:
			c = -compareFloat(a.Rating, b.Rating)
			if c == 0 {
				c = compareTitle(a, b)
			}
		}
		if c != 0 {
			return c < 0
		}
		return a.MovieID < b.MovieID
	})
}

func compareTitle(a, b models.HistoryEntry) int {
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
