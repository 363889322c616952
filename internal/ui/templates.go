// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/tomtom215/reelview/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded stylesheet directory, rooted so that
// "style.css" is at the top level.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is embedded at build time; Sub only fails on a bad path.
		panic(err)
	}
	return sub
}

// Renderer turns a Page into HTML. Templates are parsed once.
type Renderer struct {
	page *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html.tmpl").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{page: tmpl}, nil
}

// funcMap holds the template helpers.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRating": func(r float64) string {
			return strconv.FormatFloat(r, 'f', 1, 64)
		},
		"sortArrow": func(current models.HistorySort, column string) string {
			switch {
			case column == "title" && current == models.HistoryTitleAsc,
				column == "rating" && current == models.HistoryRatingAsc:
				return "▲"
			case column == "title" && current == models.HistoryTitleDesc,
				column == "rating" && current == models.HistoryRatingDesc:
				return "▼"
			}
			return ""
		},
	}
}

// Write renders page into w. HTTP handlers should pass a buffer so a
// template error cannot leave a half-written response.
func (r *Renderer) Write(w io.Writer, page Page) error {
	if err := r.page.Execute(w, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
