// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package ui

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/tomtom215/reelview/internal/dataset"
	"github.com/tomtom215/reelview/internal/models"
	"github.com/tomtom215/reelview/internal/recommend"
	"github.com/tomtom215/reelview/internal/tmdb"
)

func int64Ptr(v int64) *int64 { return &v }

// countingPosters answers found for even tmdb ids and missing otherwise.
type countingPosters struct {
	calls int
	ids   []*int64
}

func (c *countingPosters) Resolve(_ context.Context, id *int64) tmdb.Poster {
	c.calls++
	c.ids = append(c.ids, id)
	if id != nil && *id%2 == 0 {
		return tmdb.Poster{Status: tmdb.StatusFound, URL: "https://img.example/w200/p" + strings.Repeat("x", int(*id%5)) + ".jpg"}
	}
	return tmdb.Poster{Status: tmdb.StatusMissing}
}

// fixture: user 7 appears first in ratings and has seven recommendations.
func newFixture(t *testing.T) (*dataset.Dataset, Deps, *countingPosters) {
	t.Helper()
	ds := dataset.New(
		[]models.Rating{
			{UserID: 7, MovieID: 1, Rating: 4.5},
			{UserID: 7, MovieID: 2, Rating: 2.0},
			{UserID: 1, MovieID: 3, Rating: 5.0},
		},
		[]models.Movie{
			{MovieID: 1, Title: "Toy Story (1995)"},
			{MovieID: 2, Title: "Jumanji (1995)"},
			{MovieID: 3, Title: "Heat (1995)"},
			{MovieID: 4, Title: "Casino (1995)"},
			{MovieID: 5, Title: "Sabrina (1995)"},
			{MovieID: 6, Title: "Toy Story 2 (1999)"},
			{MovieID: 7, Title: "<Alien> & Friends"},
			{MovieID: 8, Title: "GoldenEye (1995)"},
		},
		[]models.Link{
			{MovieID: 3, TMDBID: int64Ptr(10)},
			{MovieID: 4, TMDBID: int64Ptr(11)},
			{MovieID: 6, TMDBID: int64Ptr(12)},
		},
		[]models.Recommendation{
			{UserID: 7, ItemID: 3, Score: 4.9},
			{UserID: 7, ItemID: 4, Score: 4.5},
			{UserID: 7, ItemID: 5, Score: 4.1},
			{UserID: 7, ItemID: 6, Score: 3.333},
			{UserID: 7, ItemID: 7, Score: 3.0},
			{UserID: 7, ItemID: 8, Score: 2.0},
			{UserID: 7, ItemID: 1, Score: 1.0},
		},
	)
	engine, err := recommend.NewEngine(ds, nil)
	if err != nil {
		t.Fatal(err)
	}
	posters := &countingPosters{}
	return ds, Deps{
		Pipelines:   engine,
		Posters:     posters,
		Users:       ds,
		Title:       "MovieLens ALS Recommender System",
		CardsPerRow: 5,
		MaxLimit:    100,
	}, posters
}

var testDefaults = Defaults{MinScore: 0, Limit: 10, MaxLimit: 100}

func TestParseViewStateDefaults(t *testing.T) {
	ds, _, _ := newFixture(t)

	state, verr := ParseViewState(url.Values{}, testDefaults, ds)
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	want := ViewState{UserID: 7, MinScore: 0, Limit: 10, Sort: models.HistoryRatingDesc}
	if state != want {
		t.Errorf("state = %+v, want %+v", state, want)
	}
}

func TestParseViewState(t *testing.T) {
	ds, _, _ := newFixture(t)

	tests := []struct {
		name      string
		query     string
		want      ViewState
		wantField string
	}{
		{
			name:  "all parameters",
			query: "user=1&min_score=3.5&limit=25&q=+toy+&sort=title_desc",
			want:  ViewState{UserID: 1, MinScore: 3.5, Limit: 25, Query: "toy", Sort: models.HistoryTitleDesc},
		},
		{
			name:  "unknown user falls back",
			query: "user=999",
			want:  ViewState{UserID: 7, Limit: 10, Sort: models.HistoryRatingDesc},
		},
		{
			name:  "score snapped to step",
			query: "min_score=2.46",
			want:  ViewState{UserID: 7, MinScore: 2.5, Limit: 10, Sort: models.HistoryRatingDesc},
		},
		{name: "score above range", query: "min_score=5.1", wantField: "min_score"},
		{name: "score not a number", query: "min_score=high", wantField: "min_score"},
		{name: "limit zero", query: "limit=0", wantField: "limit"},
		{name: "limit above max", query: "limit=101", wantField: "limit"},
		{name: "bad sort", query: "sort=year", wantField: "sort"},
		{name: "user not an integer", query: "user=alice", wantField: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			state, verr := ParseViewState(values, testDefaults, ds)

			if tt.wantField != "" {
				if verr == nil {
					t.Fatalf("expected validation error on %s", tt.wantField)
				}
				if got := verr.Fields(); len(got) != 1 || got[0] != tt.wantField {
					t.Errorf("fields = %v, want [%s]", got, tt.wantField)
				}
				if state != DefaultState(testDefaults, ds) {
					t.Errorf("state after error = %+v, want defaults", state)
				}
				return
			}
			if verr != nil {
				t.Fatalf("unexpected error: %v", verr)
			}
			if state != tt.want {
				t.Errorf("state = %+v, want %+v", state, tt.want)
			}
		})
	}
}

func TestViewStateValuesRoundTrip(t *testing.T) {
	ds, _, _ := newFixture(t)
	in := ViewState{UserID: 1, MinScore: 1.2, Limit: 7, Query: "toy story", Sort: models.HistoryTitleAsc}

	out, verr := ParseViewState(in.Values(), testDefaults, ds)
	if verr != nil {
		t.Fatal(verr)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestRenderCardsAndHeadings(t *testing.T) {
	_, deps, posters := newFixture(t)
	state := ViewState{UserID: 7, MinScore: 0, Limit: 10, Sort: models.HistoryRatingDesc}

	page := Render(context.Background(), deps, state)

	if page.RecommendationsHeading != "Top 10 Recommendations for User 7" {
		t.Errorf("heading = %q", page.RecommendationsHeading)
	}
	if page.History.Heading != "Movies Already Rated by User 7" {
		t.Errorf("history heading = %q", page.History.Heading)
	}
	if len(page.CardRows) != 2 || len(page.CardRows[0]) != 5 || len(page.CardRows[1]) != 2 {
		t.Fatalf("card rows = %d (%v), want 5 + 2", len(page.CardRows), page.CardRows)
	}

	first := page.CardRows[0][0]
	if first.Title != "Heat (1995)" || first.Score != "4.90" || first.PosterURL == "" {
		t.Errorf("first card = %+v", first)
	}
	if c := page.CardRows[0][3]; c.Score != "3.33" {
		t.Errorf("score formatting = %q, want 3.33", c.Score)
	}
	if c := page.CardRows[0][1]; c.PosterURL != "" {
		t.Errorf("odd tmdb id should have no poster, got %q", c.PosterURL)
	}

	// One lookup per visible card, in card order, including null ids.
	if posters.calls != 7 {
		t.Errorf("poster lookups = %d, want 7", posters.calls)
	}
	if posters.ids[0] == nil || *posters.ids[0] != 10 || posters.ids[2] != nil {
		t.Errorf("lookup order = %v", posters.ids)
	}
}

func TestRenderEmptyResults(t *testing.T) {
	_, deps, posters := newFixture(t)

	page := Render(context.Background(), deps, ViewState{UserID: 1, Limit: 10})
	if len(page.CardRows) != 0 {
		t.Errorf("user without recommendations should have no cards: %v", page.CardRows)
	}
	if posters.calls != 0 {
		t.Errorf("poster lookups = %d, want 0", posters.calls)
	}
	if len(page.History.Entries) != 1 {
		t.Errorf("history = %v", page.History.Entries)
	}

	page = Render(context.Background(), deps, ViewState{UserID: 7, MinScore: 5.0, Limit: 10})
	if len(page.CardRows) != 0 {
		t.Errorf("threshold above every score should render no cards")
	}
}

func TestRenderSearch(t *testing.T) {
	_, deps, _ := newFixture(t)

	page := Render(context.Background(), deps, ViewState{UserID: 7, Limit: 10})
	if page.Search.Active || page.Search.Results != nil {
		t.Errorf("empty query must not run the filter: %+v", page.Search)
	}

	page = Render(context.Background(), deps, ViewState{UserID: 7, Limit: 10, Query: "TOY"})
	if !page.Search.Active {
		t.Fatal("search should be active")
	}
	want := []SearchRow{{Title: "Toy Story 2 (1999)", Score: "3.33"}, {Title: "Toy Story (1995)", Score: "1.00"}}
	if len(page.Search.Results) != len(want) {
		t.Fatalf("results = %v, want %v", page.Search.Results, want)
	}
	for i := range want {
		if page.Search.Results[i] != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, page.Search.Results[i], want[i])
		}
	}

	// Search only sees the rendered recommendations.
	page = Render(context.Background(), deps, ViewState{UserID: 7, Limit: 2, Query: "toy"})
	if len(page.Search.Results) != 0 {
		t.Errorf("results outside the limit leaked: %v", page.Search.Results)
	}
}

func TestHistorySortLinks(t *testing.T) {
	_, deps, _ := newFixture(t)

	page := Render(context.Background(), deps, ViewState{UserID: 7, Limit: 10, Sort: models.HistoryRatingDesc})
	if got := page.History.Entries; len(got) != 2 || got[0].Title != "Toy Story (1995)" {
		t.Errorf("rating_desc entries = %v", got)
	}
	if !strings.Contains(string(page.History.RateSort), "sort=rating_asc") {
		t.Errorf("rating link = %q, want toggle to rating_asc", page.History.RateSort)
	}
	if !strings.Contains(string(page.History.TitleSort), "sort=title_asc") {
		t.Errorf("title link = %q", page.History.TitleSort)
	}

	page = Render(context.Background(), deps, ViewState{UserID: 7, Limit: 10, Sort: models.HistoryTitleAsc})
	if got := page.History.Entries; got[0].Title != "Jumanji (1995)" {
		t.Errorf("title_asc entries = %v", got)
	}
	if !strings.Contains(string(page.History.TitleSort), "sort=title_desc") {
		t.Errorf("title link = %q, want toggle to title_desc", page.History.TitleSort)
	}
}

func TestRendererWrite(t *testing.T) {
	_, deps, _ := newFixture(t)
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	page := Render(context.Background(), deps, ViewState{UserID: 7, Limit: 10, Query: "alien", Sort: models.HistoryRatingDesc})
	page.Notice = "limit must be at most 100"

	var sb strings.Builder
	if err := r.Write(&sb, page); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	html := sb.String()

	for _, want := range []string{
		"<title>MovieLens ALS Recommender System</title>",
		"Top 10 Recommendations for User 7",
		"Movies Already Rated by User 7",
		"Search Movies in Recommendations",
		"Score: 4.90",
		`<option value="7" selected>`,
		`class="search-results"`,
		"limit must be at most 100",
		"&lt;Alien&gt; &amp; Friends",
		`href="?limit=10&amp;min_score=0.0&amp;q=alien&amp;sort=rating_asc&amp;user=7"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(html, "<Alien>") {
		t.Error("titles must be HTML-escaped")
	}
}

func TestRendererOmitsSearchTableWithoutQuery(t *testing.T) {
	_, deps, _ := newFixture(t)
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := r.Write(&sb, Render(context.Background(), deps, ViewState{UserID: 7, Limit: 3})); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sb.String(), `class="search-results"`) {
		t.Error("search table rendered for empty query")
	}
}

func TestStaticFS(t *testing.T) {
	f, err := StaticFS().Open("style.css")
	if err != nil {
		t.Fatalf("style.css not embedded: %v", err)
	}
	_ = f.Close()
}
