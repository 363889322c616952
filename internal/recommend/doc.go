// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

// Package recommend turns the precomputed recommendation table into per-user
// views.
//
// Scores come from an offline ALS model and are treated as opaque floats.
// Nothing here trains or rescores; the package only selects, joins, orders
// and truncates.
//
// # Pipelines
//
// Recommendations for a user:
//
//  1. select rows with user_id == user
//  2. drop rows with score < min_score (score == min_score is kept)
//  3. inner-join with movies on item_id == movieId
//  4. sort by score descending, ties broken by item_id ascending
//  5. keep the first limit rows
//
// History for a user selects that user's ratings, inner-joins them with
// movies and orders them by the requested HistorySort (rating descending by
// default). Ties fall back to title and then movieId.
//
// Search keeps the recommendations whose title contains the query,
// ignoring case, in their original order.
//
// # Usage
//
//	engine, err := recommend.NewEngine(ds, recommend.DefaultConfig())
//	recs := engine.Recommend(ctx, recommend.Request{UserID: 1, MinScore: 3.5, Limit: 10})
//	hits := recommend.Search(recs, "toy")
//
// An unknown user, a limit of zero or a threshold nothing passes all yield
// an empty slice, never an error.
package recommend
