// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelview/internal/cache"
	"github.com/tomtom215/reelview/internal/config"
	"github.com/tomtom215/reelview/internal/dataset"
	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/tmdb"
	"github.com/tomtom215/reelview/internal/ui"
)

// DatasetProvider exposes the loaded tables. *dataset.Loader implements it;
// Dataset returns nil until loading has finished.
type DatasetProvider interface {
	Dataset() *dataset.Dataset
}

// PosterService is the poster resolver as seen by handlers.
// *tmdb.Resolver implements it.
type PosterService interface {
	Resolve(ctx context.Context, tmdbID *int64) tmdb.Poster
	Enabled() bool
	BreakerState() string
	CacheStats() cache.Stats
}

// HandlerDeps are the collaborators of a Handler.
type HandlerDeps struct {
	Data      DatasetProvider
	Pipelines ui.Pipelines
	Posters   PosterService
	Renderer  *ui.Renderer
	UI        config.UIConfig
}

// Handler serves the page and the JSON API.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, the page
//   - handlers_data.go: users, recommendations, history, posters
//   - handlers_health.go: liveness and readiness
//   - handlers_helpers.go: shared parsing and logging helpers
type Handler struct {
	data      DatasetProvider
	pipelines ui.Pipelines
	posters   PosterService
	renderer  *ui.Renderer
	ui        config.UIConfig
	startTime time.Time
}

// NewHandler creates a Handler. Data, Pipelines and Renderer are required;
// a nil Posters disables poster lookups.
func NewHandler(deps HandlerDeps) (*Handler, error) {
	switch {
	case deps.Data == nil:
		return nil, errors.New("api: nil dataset provider")
	case deps.Pipelines == nil:
		return nil, errors.New("api: nil pipelines")
	case deps.Renderer == nil:
		return nil, errors.New("api: nil renderer")
	}
	posters := deps.Posters
	if posters == nil {
		posters = tmdb.NewResolver(nil, tmdb.ResolverConfig{})
	}
	return &Handler{
		data:      deps.Data,
		pipelines: deps.Pipelines,
		posters:   posters,
		renderer:  deps.Renderer,
		ui:        deps.UI,
		startTime: time.Now(),
	}, nil
}

// Page renders the recommendation browser for the view state in the query
// string. A malformed query is answered with 400 and the default view plus
// a notice, so the browser always gets a usable page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Dataset()
	if ds == nil {
		http.Error(w, "Dataset is still loading, retry shortly.", http.StatusServiceUnavailable)
		return
	}

	state, verr := ui.ParseViewState(r.URL.Query(), ui.DefaultsFromConfig(h.ui), ds)

	page := ui.Render(r.Context(), ui.Deps{
		Pipelines:   h.pipelines,
		Posters:     h.posters,
		Users:       ds,
		Title:       h.ui.PageTitle,
		CardsPerRow: h.ui.CardsPerRow,
		MaxLimit:    h.ui.MaxLimit,
	}, state)

	status := http.StatusOK
	if verr != nil {
		status = http.StatusBadRequest
		page.Notice = "Invalid input, showing defaults: " + verr.Error()
		logging.Ctx(r.Context()).Debug().
			Strs("fields", verr.Fields()).
			Str("query", sanitizeLogValue(r.URL.RawQuery)).
			Msg("Page query rejected")
	}

	var buf bytes.Buffer
	if err := h.renderer.Write(&buf, page); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Client went away during page write")
	}
}

// Static serves the embedded stylesheet.
func (h *Handler) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(ui.StaticFS())))
}
