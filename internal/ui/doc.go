// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

// Package ui renders the recommendation browser page.
//
// Every request is a full re-render: the query string is decoded into a
// ViewState, Render runs the recommendation and history pipelines for it and
// returns a Page render tree, and Renderer writes that tree as HTML using the
// embedded templates. Nothing is retained between requests, so the page is
// always consistent with the controls that produced it.
//
//	state, verr := ui.ParseViewState(r.URL.Query(), defaults, ds)
//	page := ui.Render(ctx, deps, state)
//	if verr != nil {
//	    page.Notice = verr.Error()
//	}
//	_ = renderer.Write(w, page)
package ui
