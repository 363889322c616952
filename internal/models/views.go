// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package models

// EnrichedRecommendation is a Recommendation carrying its Movie's metadata.
// PosterURL is only set when a caller resolved the poster.
type EnrichedRecommendation struct {
	UserID    int64   `json:"user_id"`
	ItemID    int64   `json:"item_id"`
	Score     float64 `json:"score"`
	Title     string  `json:"title"`
	Genres    string  `json:"genres"`
	TMDBID    *int64  `json:"tmdb_id,omitempty"`
	PosterURL string  `json:"poster_url,omitempty"`
}

// HistoryEntry is one row of a user's rating history.
type HistoryEntry struct {
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Rating  float64 `json:"rating"`
}

// HistorySort selects the ordering of a history listing.
type HistorySort string

// History orderings. Every mode falls back to movie id ascending.
const (
	HistoryRatingDesc HistorySort = "rating_desc"
	HistoryRatingAsc  HistorySort = "rating_asc"
	HistoryTitleAsc   HistorySort = "title_asc"
	HistoryTitleDesc  HistorySort = "title_desc"
)

var historySorts = []HistorySort{HistoryRatingDesc, HistoryRatingAsc, HistoryTitleAsc, HistoryTitleDesc}

// Valid reports whether s is a known ordering.
func (s HistorySort) Valid() bool {
	for _, known := range historySorts {
		if s == known {
			return true
		}
	}
	return false
}

// HistorySortNames lists the accepted sort values, default first.
func HistorySortNames() []string {
	names := make([]string, len(historySorts))
	for i, s := range historySorts {
		names[i] = string(s)
	}
	return names
}
