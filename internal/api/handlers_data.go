// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package api

import (
	"net/http"

	"github.com/tomtom215/reelview/internal/dataset"
	"github.com/tomtom215/reelview/internal/models"
	"github.com/tomtom215/reelview/internal/recommend"
	"github.com/tomtom215/reelview/internal/tmdb"
	"github.com/tomtom215/reelview/internal/validation"
)

// PosterResponse is the payload of the poster endpoint.
type PosterResponse struct {
	MovieID int64       `json:"movie_id"`
	TMDBID  *int64      `json:"tmdb_id"`
	Status  tmdb.Status `json:"status"`
	URL     string      `json:"url,omitempty"`
	Cached  bool        `json:"cached"`
}

// loaded returns the dataset or answers 503.
func (h *Handler) loaded(w http.ResponseWriter, r *http.Request) *dataset.Dataset {
	ds := h.data.Dataset()
	if ds == nil {
		NewResponseWriter(w, r).Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Dataset is still loading")
	}
	return ds
}

// Users lists the distinct user ids in ratings file order.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ds := h.loaded(w, r)
	if ds == nil {
		return
	}
	users := ds.Users()
	rw.SuccessList(users, len(users))
}

// Recommendations returns one user's filtered recommendations. An unknown
// user yields an empty list. With posters=true each row carries poster_url
// when one resolved; lookups are serial in result order.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.loaded(w, r) == nil {
		return
	}

	userID, verr := pathID(r, "userID")
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	q, verr := parseRecommendationsQuery(r, h.ui.DefaultMinScore, h.ui.DefaultLimit, h.ui.MaxLimit)
	if verr != nil {
		rw.ValidationError(verr)
		return
	}

	recs := h.pipelines.Recommend(r.Context(), recommend.Request{
		UserID:   userID,
		MinScore: q.MinScore,
		Limit:    q.Limit,
	})
	if q.Query != "" {
		recs = recommend.Search(recs, q.Query)
	}
	if q.Posters {
		for i := range recs {
			if p := h.posters.Resolve(r.Context(), recs[i].TMDBID); p.OK() {
				recs[i].PosterURL = p.URL
			}
		}
	}
	if recs == nil {
		recs = []models.EnrichedRecommendation{}
	}
	rw.SuccessList(recs, len(recs))
}

// History returns the movies a user rated, ordered by sort.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.loaded(w, r) == nil {
		return
	}

	userID, verr := pathID(r, "userID")
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	q := historyQuery{Sort: r.URL.Query().Get("sort")}
	if verr := validation.ValidateStruct(&q); verr != nil {
		rw.ValidationError(verr)
		return
	}
	sort := models.HistorySort(q.Sort)
	if sort == "" {
		sort = models.HistoryRatingDesc
	}

	entries := h.pipelines.History(r.Context(), userID, sort)
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	rw.SuccessList(entries, len(entries))
}

// Poster resolves the poster of one movie. A movie without a tmdb id is
// reported as missing without a lookup.
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ds := h.loaded(w, r)
	if ds == nil {
		return
	}

	movieID, verr := pathID(r, "movieID")
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	movie, ok := ds.Movie(movieID)
	if !ok {
		rw.NotFound("Movie not found")
		return
	}

	p := h.posters.Resolve(r.Context(), movie.TMDBID)
	rw.Success(PosterResponse{
		MovieID: movie.MovieID,
		TMDBID:  movie.TMDBID,
		Status:  p.Status,
		URL:     p.URL,
		Cached:  p.Cached,
	})
}
