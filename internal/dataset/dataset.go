// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package dataset

import "github.com/tomtom215/reelview/internal/models"

// Dataset holds the loaded tables plus lookup indexes built at load time.
// It is immutable after construction and safe for concurrent readers.
type Dataset struct {
	Ratings         []models.Rating
	Movies          []models.Movie
	Links           []models.Link
	Recommendations []models.Recommendation

	movieByID     map[int64]int
	ratingsByUser map[int64][]int
	recsByUser    map[int64][]int
	users         []int64
}

// New indexes the given tables and enriches movies with their tmdbId.
// The slices are owned by the returned Dataset.
func New(ratings []models.Rating, movies []models.Movie, links []models.Link, recs []models.Recommendation) *Dataset {
	ds := &Dataset{
		Ratings:         ratings,
		Movies:          movies,
		Links:           links,
		Recommendations: recs,
		movieByID:       make(map[int64]int, len(movies)),
		ratingsByUser:   make(map[int64][]int),
		recsByUser:      make(map[int64][]int),
	}

	// Left join movies with links on movieId. The first link row per movie wins.
	tmdbByMovie := make(map[int64]*int64, len(links))
	for _, l := range links {
		if _, seen := tmdbByMovie[l.MovieID]; !seen {
			tmdbByMovie[l.MovieID] = l.TMDBID
		}
	}
	for i := range ds.Movies {
		ds.Movies[i].TMDBID = tmdbByMovie[ds.Movies[i].MovieID]
		if _, dup := ds.movieByID[ds.Movies[i].MovieID]; !dup {
			ds.movieByID[ds.Movies[i].MovieID] = i
		}
	}

	for i, r := range ds.Ratings {
		if _, seen := ds.ratingsByUser[r.UserID]; !seen {
			ds.users = append(ds.users, r.UserID)
		}
		ds.ratingsByUser[r.UserID] = append(ds.ratingsByUser[r.UserID], i)
	}
	for i, r := range ds.Recommendations {
		ds.recsByUser[r.UserID] = append(ds.recsByUser[r.UserID], i)
	}

	return ds
}

// Movie returns the movie with the given id.
func (d *Dataset) Movie(movieID int64) (models.Movie, bool) {
	i, ok := d.movieByID[movieID]
	if !ok {
		return models.Movie{}, false
	}
	return d.Movies[i], true
}

// Users returns the distinct user ids of the ratings table in order of first
// appearance. The returned slice must not be modified.
func (d *Dataset) Users() []int64 {
	return d.users
}

// HasUser reports whether userID has at least one rating.
func (d *Dataset) HasUser(userID int64) bool {
	_, ok := d.ratingsByUser[userID]
	return ok
}

// RatingsFor returns userID's ratings in file order.
func (d *Dataset) RatingsFor(userID int64) []models.Rating {
	idx := d.ratingsByUser[userID]
	out := make([]models.Rating, len(idx))
	for i, j := range idx {
		out[i] = d.Ratings[j]
	}
	return out
}

// RecommendationsFor returns userID's precomputed recommendations in file order.
func (d *Dataset) RecommendationsFor(userID int64) []models.Recommendation {
	idx := d.recsByUser[userID]
	out := make([]models.Recommendation, len(idx))
	for i, j := range idx {
		out[i] = d.Recommendations[j]
	}
	return out
}

// Stats returns the row count of every table, keyed by table name.
func (d *Dataset) Stats() map[string]int {
	return map[string]int{
		"ratings":         len(d.Ratings),
		"movies":          len(d.Movies),
		"links":           len(d.Links),
		"recommendations": len(d.Recommendations),
		"users":           len(d.users),
	}
}
