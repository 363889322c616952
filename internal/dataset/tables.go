// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package dataset

import "github.com/tomtom215/reelview/internal/models"

func readRatings(path string) ([]models.Rating, error) {
	var out []models.Rating
	err := readTable(path, []string{"userId", "movieId", "rating", "timestamp"}, func(r row) error {
		userID, err := r.int64("userId")
		if err != nil {
			return err
		}
		movieID, err := r.int64("movieId")
		if err != nil {
			return err
		}
		rating, err := r.float64("rating")
		if err != nil {
			return err
		}
		ts, err := r.int64("timestamp")
		if err != nil {
			return err
		}
		out = append(out, models.Rating{UserID: userID, MovieID: movieID, Rating: rating, Timestamp: ts})
		return nil
	})
	return out, err
}

func readMovies(path string) ([]models.Movie, error) {
	var out []models.Movie
	err := readTable(path, []string{"movieId", "title", "genres"}, func(r row) error {
		movieID, err := r.int64("movieId")
		if err != nil {
			return err
		}
		out = append(out, models.Movie{MovieID: movieID, Title: r.str("title"), Genres: r.str("genres")})
		return nil
	})
	return out, err
}

func readLinks(path string) ([]models.Link, error) {
	var out []models.Link
	err := readTable(path, []string{"movieId", "imdbId", "tmdbId"}, func(r row) error {
		movieID, err := r.int64("movieId")
		if err != nil {
			return err
		}
		imdbID, err := r.optionalID("imdbId")
		if err != nil {
			return err
		}
		tmdbID, err := r.optionalID("tmdbId")
		if err != nil {
			return err
		}
		link := models.Link{MovieID: movieID, TMDBID: tmdbID}
		if imdbID != nil {
			link.IMDBID = *imdbID
		}
		out = append(out, link)
		return nil
	})
	return out, err
}

func readRecommendations(path string) ([]models.Recommendation, error) {
	var out []models.Recommendation
	err := readTable(path, []string{"user_id", "item_id", "score"}, func(r row) error {
		userID, err := r.int64("user_id")
		if err != nil {
			return err
		}
		itemID, err := r.int64("item_id")
		if err != nil {
			return err
		}
		score, err := r.float64("score")
		if err != nil {
			return err
		}
		out = append(out, models.Recommendation{UserID: userID, ItemID: itemID, Score: score})
		return nil
	})
	return out, err
}
