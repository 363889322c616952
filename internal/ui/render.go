// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package ui

import (
	"context"
	"fmt"
	"html/template"

	"github.com/tomtom215/reelview/internal/models"
	"github.com/tomtom215/reelview/internal/recommend"
	"github.com/tomtom215/reelview/internal/tmdb"
)

// Pipelines is the part of *recommend.Engine a page needs.
type Pipelines interface {
	Recommend(ctx context.Context, req recommend.Request) []models.EnrichedRecommendation
	History(ctx context.Context, userID int64, by models.HistorySort) []models.HistoryEntry
}

// PosterResolver is implemented by *tmdb.Resolver.
type PosterResolver interface {
	Resolve(ctx context.Context, tmdbID *int64) tmdb.Poster
}

// Deps are the collaborators of Render.
type Deps struct {
	Pipelines   Pipelines
	Posters     PosterResolver
	Users       UserSet
	Title       string
	CardsPerRow int
	MaxLimit    int
}

// Page is the render tree of one full page.
type Page struct {
	Title   string
	Notice  string
	State   ViewState
	Sidebar Sidebar

	RecommendationsHeading string
	CardRows               [][]Card

	History HistorySection
	Search  SearchSection
}

// Sidebar holds the user controls.
type Sidebar struct {
	Users    []UserOption
	MinScore string
	Limit    int
	MaxLimit int
}

// UserOption is one entry of the user selector.
type UserOption struct {
	ID       int64
	Selected bool
}

// Card is one recommendation tile. PosterURL is empty when no poster was found.
type Card struct {
	ItemID    int64
	Title     string
	Score     string
	PosterURL string
}

// HistorySection is the sortable table of the user's own ratings.
type HistorySection struct {
	Heading   string
	Entries   []models.HistoryEntry
	TitleSort template.URL // link selecting the next title ordering
	RateSort  template.URL // link selecting the next rating ordering
	Sort      models.HistorySort
}

// SearchSection is the search box and its result table. Results is only
// populated when Active.
type SearchSection struct {
	Heading string
	Query   string
	Active  bool
	Results []SearchRow
}

// SearchRow is one (title, score) row of the search table.
type SearchRow struct {
	Title string
	Score string
}

// FormatScore renders a predicted score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// Render evaluates both pipelines for state and builds the page. Poster
// lookups run serially in card order; each one is bounded by the metadata
// client's timeout and never fails the render.
func Render(ctx context.Context, deps Deps, state ViewState) Page {
	cardsPerRow := deps.CardsPerRow
	if cardsPerRow < 1 {
		cardsPerRow = 5
	}

	recs := deps.Pipelines.Recommend(ctx, recommend.Request{
		UserID:   state.UserID,
		MinScore: state.MinScore,
		Limit:    state.Limit,
	})

	page := Page{
		Title:                  deps.Title,
		State:                  state,
		Sidebar:                buildSidebar(deps, state),
		RecommendationsHeading: fmt.Sprintf("Top %d Recommendations for User %d", state.Limit, state.UserID),
		CardRows:               buildCardRows(ctx, deps.Posters, recs, cardsPerRow),
		History:                buildHistory(ctx, deps.Pipelines, state),
		Search:                 buildSearch(recs, state.Query),
	}
	return page
}

func buildSidebar(deps Deps, state ViewState) Sidebar {
	sb := Sidebar{
		MinScore: fmt.Sprintf("%.1f", state.MinScore),
		Limit:    state.Limit,
		MaxLimit: deps.MaxLimit,
	}
	if deps.Users == nil {
		return sb
	}
	ids := deps.Users.Users()
	sb.Users = make([]UserOption, len(ids))
	for i, id := range ids {
		sb.Users[i] = UserOption{ID: id, Selected: id == state.UserID}
	}
	return sb
}

func buildCardRows(ctx context.Context, posters PosterResolver, recs []models.EnrichedRecommendation, perRow int) [][]Card {
	rows := make([][]Card, 0, (len(recs)+perRow-1)/perRow)
	for i, rec := range recs {
		if i%perRow == 0 {
			rows = append(rows, make([]Card, 0, perRow))
		}
		card := Card{ItemID: rec.ItemID, Title: rec.Title, Score: FormatScore(rec.Score)}
		if posters != nil {
			if p := posters.Resolve(ctx, rec.TMDBID); p.OK() {
				card.PosterURL = p.URL
			}
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], card)
	}
	return rows
}

func buildHistory(ctx context.Context, pipelines Pipelines, state ViewState) HistorySection {
	sort := state.Sort
	if !sort.Valid() {
		sort = models.HistoryRatingDesc
	}

	nextTitle := models.HistoryTitleAsc
	if sort == models.HistoryTitleAsc {
		nextTitle = models.HistoryTitleDesc
	}
	nextRating := models.HistoryRatingDesc
	if sort == models.HistoryRatingDesc {
		nextRating = models.HistoryRatingAsc
	}

	return HistorySection{
		Heading:   fmt.Sprintf("Movies Already Rated by User %d", state.UserID),
		Entries:   pipelines.History(ctx, state.UserID, sort),
		TitleSort: pageLink(state.WithSort(nextTitle)),
		RateSort:  pageLink(state.WithSort(nextRating)),
		Sort:      sort,
	}
}

// pageLink is the relative URL of the page for state. The query string is
// built by url.Values, so it is safe to mark as a URL.
func pageLink(state ViewState) template.URL {
	//nolint:gosec // encoded by url.Values
	return template.URL("?" + state.Values().Encode())
}

// buildSearch filters the rendered recommendations. The filter is not run
// for an empty query.
func buildSearch(recs []models.EnrichedRecommendation, query string) SearchSection {
	s := SearchSection{Heading: "Search Movies in Recommendations", Query: query}
	if query == "" {
		return s
	}
	s.Active = true
	matches := recommend.Search(recs, query)
	s.Results = make([]SearchRow, len(matches))
	for i, m := range matches {
		s.Results[i] = SearchRow{Title: m.Title, Score: FormatScore(m.Score)}
	}
	return s
}
