// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package dataset loads the four MovieLens-style tables Reelview serves from.

	ratings.csv  userId,movieId,rating,timestamp
	movies.csv   movieId,title,genres
	links.csv    movieId,imdbId,tmdbId
	recs.csv     user_id,item_id,score

Columns are located by header name, so their order does not matter. A missing
file yields an error matching ErrFileNotFound; a missing column or an
unparsable cell yields a *ParseError naming the file, line and column.

A Loader reads the files once. Every later call to Load returns the same
*Dataset without touching the disk:

	loader := dataset.NewLoader(dataset.Files{Dir: "data"})
	ds, err := loader.Load(ctx)
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

After loading, movies are left-joined with links on movieId so that every
Movie carries its tmdbId, or nil when no link exists.
*/
package dataset
