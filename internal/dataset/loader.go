// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/metrics"
	"github.com/tomtom215/reelview/internal/models"
)

// Files names the four table files. Relative names are resolved against Dir.
type Files struct {
	Dir     string
	Ratings string
	Movies  string
	Links   string
	Recs    string
}

// DefaultFiles returns the MovieLens small layout used by the recommender
// training notebooks.
func DefaultFiles() Files {
	return Files{
		Dir:     ".",
		Ratings: "ml-latest-small/ratings.csv",
		Movies:  "ml-latest-small/movies.csv",
		Links:   "ml-latest-small/links.csv",
		Recs:    "recs.csv",
	}
}

func (f Files) path(name string) string {
	if filepath.IsAbs(name) || f.Dir == "" {
		return name
	}
	return filepath.Join(f.Dir, name)
}

// Loader reads the tables once and hands out the same *Dataset afterwards.
// It is safe for concurrent use; concurrent first callers wait for the one
// in-flight read.
type Loader struct {
	files Files

	mu   sync.Mutex
	done bool
	ds   *Dataset
	err  error
}

// NewLoader creates a Loader for the given files. Nothing is read until Load.
func NewLoader(files Files) *Loader {
	return &Loader{files: files}
}

// Load reads all four files concurrently on the first call. Later calls
// return the memoized result, including a memoized error, unless the
// first call failed because its context was cancelled.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done {
		ds, err := l.load(ctx)
		if err != nil && ctx.Err() != nil {
			// A cancelled caller does not poison later loads.
			return nil, err
		}
		l.ds, l.err, l.done = ds, err, true
	}
	return l.ds, l.err
}

// Dataset returns the loaded dataset, or nil before a successful Load.
func (l *Loader) Dataset() *Dataset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ds
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	logger := logging.WithComponent("dataset")

	var (
		ratings []models.Rating
		movies  []models.Movie
		links   []models.Link
		recs    []models.Recommendation
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() (err error) {
		ratings, err = readRatings(l.files.path(l.files.Ratings))
		return err
	})
	g.Go(func() (err error) {
		movies, err = readMovies(l.files.path(l.files.Movies))
		return err
	})
	g.Go(func() (err error) {
		links, err = readLinks(l.files.path(l.files.Links))
		return err
	})
	g.Go(func() (err error) {
		recs, err = readRecommendations(l.files.path(l.files.Recs))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := New(ratings, movies, links, recs)
	elapsed := time.Since(start)

	for table, n := range ds.Stats() {
		metrics.DatasetRows.WithLabelValues(table).Set(float64(n))
	}
	metrics.DatasetLoadDuration.Observe(elapsed.Seconds())

	logger.Info().
		Int("ratings", len(ds.Ratings)).
		Int("movies", len(ds.Movies)).
		Int("links", len(ds.Links)).
		Int("recommendations", len(ds.Recommendations)).
		Int("users", len(ds.Users())).
		Dur("duration", elapsed).
		Msg("Dataset loaded")

	return ds, nil
}
