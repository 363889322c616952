// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelview/internal/cache"
	"github.com/tomtom215/reelview/internal/config"
	"github.com/tomtom215/reelview/internal/dataset"
	"github.com/tomtom215/reelview/internal/metrics"
	"github.com/tomtom215/reelview/internal/models"
	"github.com/tomtom215/reelview/internal/recommend"
	"github.com/tomtom215/reelview/internal/tmdb"
	"github.com/tomtom215/reelview/internal/ui"
)

func int64Ptr(v int64) *int64 { return &v }

type staticData struct{ ds *dataset.Dataset }

func (s staticData) Dataset() *dataset.Dataset { return s.ds }

// fakePosters answers found for even tmdb ids and missing otherwise.
type fakePosters struct {
	calls int
}

func (f *fakePosters) Resolve(_ context.Context, id *int64) tmdb.Poster {
	if id == nil {
		return tmdb.Poster{Status: tmdb.StatusMissing}
	}
	f.calls++
	if *id%2 == 0 {
		return tmdb.Poster{Status: tmdb.StatusFound, URL: "https://image.example/w200/even.jpg"}
	}
	return tmdb.Poster{Status: tmdb.StatusMissing}
}

func (f *fakePosters) Enabled() bool           { return true }
func (f *fakePosters) BreakerState() string    { return "closed" }
func (f *fakePosters) CacheStats() cache.Stats { return cache.Stats{Size: 2, Hits: 1, Misses: 1} }

var testUI = config.UIConfig{
	PageTitle:       "MovieLens ALS Recommender System",
	DefaultMinScore: 0,
	DefaultLimit:    10,
	MaxLimit:        100,
	CardsPerRow:     5,
}

func newTestDataset() *dataset.Dataset {
	return dataset.New(
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
			{MovieID: 6, Title: "Toy Story 2 (1999)"},
		},
		[]models.Link{
			{MovieID: 3, TMDBID: int64Ptr(10)},
			{MovieID: 4, TMDBID: int64Ptr(11)},
			{MovieID: 6, TMDBID: int64Ptr(12)},
		},
		[]models.Recommendation{
			{UserID: 7, ItemID: 3, Score: 4.9},
			{UserID: 7, ItemID: 4, Score: 4.5},
			{UserID: 7, ItemID: 6, Score: 3.333},
			{UserID: 7, ItemID: 1, Score: 1.0},
		},
	)
}

// newTestServer builds the full router. A nil ds simulates a dataset that
// has not finished loading.
func newTestServer(t *testing.T, ds *dataset.Dataset, sec config.SecurityConfig) (http.Handler, *fakePosters) {
	t.Helper()

	src := ds
	if src == nil {
		src = newTestDataset()
	}
	engine, err := recommend.NewEngine(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	renderer, err := ui.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	posters := &fakePosters{}
	h, err := NewHandler(HandlerDeps{
		Data:      staticData{ds: ds},
		Pipelines: engine,
		Posters:   posters,
		Renderer:  renderer,
		UI:        testUI,
	})
	if err != nil {
		t.Fatal(err)
	}
	mw := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(sec))
	return NewRouter(h, mw, "https://image.tmdb.org/t/p/w200").SetupChi(), posters
}

var noRateLimit = config.SecurityConfig{RateLimitDisabled: true, CORSOrigins: []string{"*"}}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v\n%s", target, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestNewHandlerRequiresDeps(t *testing.T) {
	if _, err := NewHandler(HandlerDeps{}); err == nil {
		t.Fatal("NewHandler() with no deps should fail")
	}
}

func TestUsers(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	rec, env := get(t, h, "/api/v1/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var users []int64
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[0] != 7 || users[1] != 1 {
		t.Errorf("users = %v, want [7 1]", users)
	}
	if env.Meta == nil || env.Meta.Count == nil || *env.Meta.Count != 2 {
		t.Errorf("meta.count = %+v, want 2", env.Meta)
	}
	if env.Meta.RequestID == "" {
		t.Error("meta.request_id should be set")
	}
}

func TestRecommendations(t *testing.T) {
	h, posters := newTestServer(t, newTestDataset(), noRateLimit)

	rec, env := get(t, h, "/api/v1/users/7/recommendations?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var recs []models.EnrichedRecommendation
	if err := json.Unmarshal(env.Data, &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	if recs[0].ItemID != 3 || recs[0].Title != "Heat (1995)" {
		t.Errorf("first = %+v, want Heat", recs[0])
	}
	for _, r := range recs {
		if r.PosterURL != "" {
			t.Errorf("poster_url set without posters=true: %+v", r)
		}
	}
	if posters.calls != 0 {
		t.Errorf("poster lookups = %d, want 0", posters.calls)
	}
}

func TestRecommendationsWithPosters(t *testing.T) {
	h, posters := newTestServer(t, newTestDataset(), noRateLimit)

	_, env := get(t, h, "/api/v1/users/7/recommendations?posters=true")
	var recs []models.EnrichedRecommendation
	if err := json.Unmarshal(env.Data, &recs); err != nil {
		t.Fatal(err)
	}
	// Movie 1 has no tmdb id and is never looked up.
	if posters.calls != 3 {
		t.Errorf("poster lookups = %d, want 3", posters.calls)
	}
	got := map[int64]string{}
	for _, r := range recs {
		got[r.ItemID] = r.PosterURL
	}
	if got[3] == "" || got[6] == "" {
		t.Errorf("even tmdb ids should carry a poster: %v", got)
	}
	if got[4] != "" || got[1] != "" {
		t.Errorf("missing posters should be empty: %v", got)
	}
}

func TestRecommendationsSearchAndThreshold(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"search ignores case", "?q=toy", []int64{6, 1}},
		{"threshold", "?min_score=4.5", []int64{3, 4}},
		{"search after threshold", "?min_score=2&q=TOY", []int64{6}},
		{"no match", "?q=zzz", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := get(t, h, "/api/v1/users/7/recommendations"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var recs []models.EnrichedRecommendation
			if err := json.Unmarshal(env.Data, &recs); err != nil {
				t.Fatal(err)
			}
			if len(recs) != len(tt.want) {
				t.Fatalf("got %d rows, want %v", len(recs), tt.want)
			}
			for i, id := range tt.want {
				if recs[i].ItemID != id {
					t.Errorf("row %d = %d, want %d", i, recs[i].ItemID, id)
				}
			}
		})
	}
}

func TestRecommendationsUnknownUser(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	rec, env := get(t, h, "/api/v1/users/999/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
}

func TestValidationErrors(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"score above range", "/api/v1/users/7/recommendations?min_score=7", "min_score"},
		{"negative score", "/api/v1/users/7/recommendations?min_score=-1", "min_score"},
		{"score not a number", "/api/v1/users/7/recommendations?min_score=high", "min_score"},
		{"limit zero", "/api/v1/users/7/recommendations?limit=0", "limit"},
		{"limit above max", "/api/v1/users/7/recommendations?limit=101", "limit"},
		{"limit not a number", "/api/v1/users/7/recommendations?limit=ten", "limit"},
		{"posters not a bool", "/api/v1/users/7/recommendations?posters=maybe", "posters"},
		{"user not a number", "/api/v1/users/abc/recommendations", "userID"},
		{"unknown sort", "/api/v1/users/7/history?sort=year", "sort"},
		{"movie not a number", "/api/v1/movies/x/poster", "movieID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := get(t, h, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if env.Success || env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
				t.Fatalf("error = %+v, want %s", env.Error, ErrCodeValidationFailed)
			}
			details, _ := env.Error.Details.(map[string]interface{})
			if details["field"] != tt.field {
				t.Errorf("details.field = %v, want %s", details["field"], tt.field)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	tests := []struct {
		sort string
		want []string
	}{
		{"", []string{"Toy Story (1995)", "Jumanji (1995)"}},
		{"rating_asc", []string{"Jumanji (1995)", "Toy Story (1995)"}},
		{"title_asc", []string{"Jumanji (1995)", "Toy Story (1995)"}},
		{"title_desc", []string{"Toy Story (1995)", "Jumanji (1995)"}},
	}
	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			rec, env := get(t, h, "/api/v1/users/7/history?sort="+tt.sort)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var entries []models.HistoryEntry
			if err := json.Unmarshal(env.Data, &entries); err != nil {
				t.Fatal(err)
			}
			if len(entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.want))
			}
			for i, title := range tt.want {
				if entries[i].Title != title {
					t.Errorf("entry %d = %q, want %q", i, entries[i].Title, title)
				}
			}
		})
	}
}

func TestPoster(t *testing.T) {
	h, posters := newTestServer(t, newTestDataset(), noRateLimit)

	rec, env := get(t, h, "/api/v1/movies/3/poster")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p PosterResponse
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Status != tmdb.StatusFound || p.URL == "" || p.TMDBID == nil || *p.TMDBID != 10 {
		t.Errorf("poster = %+v, want found for tmdb 10", p)
	}

	// No link row: missing, and no lookup is made.
	before := posters.calls
	_, env = get(t, h, "/api/v1/movies/1/poster")
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Status != tmdb.StatusMissing || p.TMDBID != nil {
		t.Errorf("poster = %+v, want missing without tmdb id", p)
	}
	if posters.calls != before {
		t.Error("movie without tmdb id triggered a lookup")
	}

	rec, env = get(t, h, "/api/v1/movies/999/poster")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown movie: status = %d, error = %+v", rec.Code, env.Error)
	}
}

func TestHealth(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		h, _ := newTestServer(t, nil, noRateLimit)
		rec, env := get(t, h, "/api/v1/health/live")
		if rec.Code != http.StatusOK || !env.Success {
			t.Errorf("status = %d, success = %v", rec.Code, env.Success)
		}
	})

	t.Run("not ready before load", func(t *testing.T) {
		h, _ := newTestServer(t, nil, noRateLimit)
		rec, env := get(t, h, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var status ReadyStatus
		if err := json.Unmarshal(env.Data, &status); err != nil {
			t.Fatal(err)
		}
		if status.Ready || status.Posters.BreakerState != "closed" {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("ready", func(t *testing.T) {
		h, _ := newTestServer(t, newTestDataset(), noRateLimit)
		rec, env := get(t, h, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var status ReadyStatus
		if err := json.Unmarshal(env.Data, &status); err != nil {
			t.Fatal(err)
		}
		if !status.Ready || status.Tables["ratings"] != 3 || status.Tables["users"] != 2 {
			t.Errorf("status = %+v", status)
		}
		if status.Posters.CacheHitRate != 50 {
			t.Errorf("cache hit rate = %v, want 50", status.Posters.CacheHitRate)
		}
	})
}

func TestDataEndpointsBeforeLoad(t *testing.T) {
	h, _ := newTestServer(t, nil, noRateLimit)

	for _, target := range []string{"/api/v1/users", "/api/v1/users/7/history", "/"} {
		rec, _ := get(t, h, target)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", target, rec.Code)
		}
	}
}

func TestPage(t *testing.T) {
	h, posters := newTestServer(t, newTestDataset(), noRateLimit)

	rec, _ := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"MovieLens ALS Recommender System",
		"Top 10 Recommendations for User 7",
		"Movies Already Rated by User 7",
		"Search Movies in Recommendations",
		"4.90",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page is missing %q", want)
		}
	}
	if posters.calls != 3 {
		t.Errorf("poster lookups = %d, want 3", posters.calls)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "https://image.tmdb.org") {
		t.Errorf("CSP %q does not allow the poster host", csp)
	}
}

func TestPageInvalidInput(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	rec, _ := get(t, h, "/?user=7&limit=500")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid input") {
		t.Error("page should carry an error notice")
	}
	if !strings.Contains(body, "Top 10 Recommendations for User 7") {
		t.Error("page should fall back to the default view")
	}
}

func TestStatic(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	rec, _ := get(t, h, "/static/style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestNotFoundAndMethod(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	rec, env := get(t, h, "/api/v1/nope")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route: status = %d, error = %+v", rec.Code, env.Error)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"*"},
	})

	for i := 0; i < 2; i++ {
		if rec, _ := get(t, h, "/api/v1/users"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}
	rec, env := get(t, h, "/api/v1/users")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}
	if n := testutil.CollectAndCount(metrics.APIRateLimitHits); n == 0 {
		t.Error("rate limit hit was not counted")
	}

	// Health probes have their own budget.
	if rec, _ := get(t, h, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	h, _ := newTestServer(t, newTestDataset(), noRateLimit)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Meta.RequestID != "abc-123" {
		t.Errorf("meta.request_id = %q", env.Meta.RequestID)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}

func TestOriginOf(t *testing.T) {
	tests := map[string]string{
		"https://image.tmdb.org/t/p/w200": "https://image.tmdb.org",
		"http://localhost:9000/img":       "http://localhost:9000",
		"":                                "",
		"not a url":                       "",
	}
	for in, want := range tests {
		if got := originOf(in); got != want {
			t.Errorf("originOf(%q) = %q, want %q", in, got, want)
		}
	}
}
