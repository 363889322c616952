// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package models

// Rating is a single historical rating from ratings.csv.
type Rating struct {
	UserID    int64   `json:"user_id"`
	MovieID   int64   `json:"movie_id"`
	Rating    float64 `json:"rating"`
	Timestamp int64   `json:"timestamp"`
}

// Movie is a movies.csv row. TMDBID is nil when links.csv has no row for the
// movie or the row's tmdbId cell is empty.
type Movie struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
	Genres  string `json:"genres"`
	TMDBID  *int64 `json:"tmdb_id,omitempty"`
}

// Link is a links.csv row.
type Link struct {
	MovieID int64  `json:"movie_id"`
	IMDBID  int64  `json:"imdb_id"`
	TMDBID  *int64 `json:"tmdb_id,omitempty"`
}

// Recommendation is a precomputed recs.csv row.
type Recommendation struct {
	UserID int64   `json:"user_id"`
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}
