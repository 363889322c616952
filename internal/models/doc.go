// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package models defines the tables and derived views shared across Reelview.

Base tables are loaded once from flat files and never mutated:

  - Rating: one (userId, movieId, rating, timestamp) row of ratings.csv
  - Movie: movies.csv, enriched with the tmdbId from links.csv
  - Link: links.csv, used only to enrich Movie
  - Recommendation: one precomputed (user_id, item_id, score) row of recs.csv

Derived views are recomputed on every request:

  - EnrichedRecommendation: a Recommendation joined to its Movie
  - HistoryEntry: a Rating joined to its Movie, projected to (title, rating)
*/
package models
