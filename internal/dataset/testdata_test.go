// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	fixtureRatings = "userId,movieId,rating,timestamp\n" +
		"1,1,4.0,964982703\n" +
		"1,3,4.0,964981247\n" +
		"1,6,4.0,964982224\n" +
		"7,1,2.5,851866703\n"
	fixtureMovies = "movieId,title,genres\n" +
		"1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy\n" +
		"2,Jumanji (1995),Adventure|Children|Fantasy\n" +
		"3,Grumpier Old Men (1995),Comedy|Romance\n" +
		"6,Heat (1995),Action|Crime|Thriller\n" +
		"\"10\",\"GoldenEye (1995)\",Action|Adventure|Thriller\n"
	fixtureLinks = "movieId,imdbId,tmdbId\n" +
		"1,0114709,862\n" +
		"2,0113497,8844.0\n" +
		"3,0113228,\n"
	fixtureRecs = "user_id,item_id,score\n" +
		"1,2,4.8\n" +
		"1,10,3.2\n" +
		"1,6,4.8\n" +
		"1,3,1.0\n" +
		"1,1,0.5\n" +
		"7,99,4.9\n"
)

// writeFixture writes the four tables into a temp dir and returns the Files
// pointing at them. overrides replaces individual file contents by name.
func writeFixture(t *testing.T, overrides map[string]string) Files {
	t.Helper()

	dir := t.TempDir()
	contents := map[string]string{
		"ratings.csv": fixtureRatings,
		"movies.csv":  fixtureMovies,
		"links.csv":   fixtureLinks,
		"recs.csv":    fixtureRecs,
	}
	for name, body := range overrides {
		contents[name] = body
	}
	for name, body := range contents {
		if body == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return Files{Dir: dir, Ratings: "ratings.csv", Movies: "movies.csv", Links: "links.csv", Recs: "recs.csv"}
}
