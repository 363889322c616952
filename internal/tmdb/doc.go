// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package tmdb resolves movie posters through The Movie Database v3 API.

Three layers stack on top of each other:

	Client         GET {base}/movie/{id}?api_key=KEY, paced by x/time/rate
	BreakerClient  gobreaker circuit breaker with Prometheus state metrics
	Resolver       typed Poster result, LRU memo, singleflight dedup

A poster lookup never fails the page that asked for it. Resolve returns a
Poster whose Status is one of found, missing, unavailable or failed, and
only found carries a URL, built as image base + poster_path:

	client := tmdb.NewClient(tmdb.ClientConfig{BaseURL: base, APIKey: key})
	resolver := tmdb.NewResolver(
	    tmdb.NewBreakerClient(client, tmdb.DefaultBreakerSettings()),
	    tmdb.ResolverConfig{ImageBaseURL: "https://image.tmdb.org/t/p/w200"},
	)
	if p := resolver.Resolve(ctx, movie.TMDBID); p.OK() {
	    card.PosterURL = p.URL
	}

A movie without a tmdbId resolves to missing without any network call.
*/
package tmdb
