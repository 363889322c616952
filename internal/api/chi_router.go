// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelview/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	imageOrigin   string
}

// NewRouter creates a Router. imageBaseURL is the poster image host, which
// the page's content security policy must allow; it may be empty.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, imageBaseURL string) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		imageOrigin:   originOf(imageBaseURL),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first. Compression sits innermost so the
	// logger and metrics see the status the handler chose.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(middleware.DefaultSlowRequestThreshold))
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(APISecurityHeaders())
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteNotFound(w, req, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).MethodNotAllowed()
	})

	// ========================
	// Page
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(PageSecurityHeaders(router.imageOrigin))
		r.Get("/", router.handler.Page)
	})
	r.Handle("/static/*", router.handler.Static())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Data Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/users", router.handler.Users)
		r.Get("/users/{userID}/recommendations", router.handler.Recommendations)
		r.Get("/users/{userID}/history", router.handler.History)
		r.Get("/movies/{movieID}/poster", router.handler.Poster)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// originOf reduces a URL to scheme://host for use in a CSP source list.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
