// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package api provides the HTTP layer of Reelview: the server-rendered
recommendation browser and a JSON mirror of its pipelines.

Routes:

	GET /                                         recommendation browser (HTML)
	GET /static/*                                 embedded stylesheet
	GET /api/v1/users                             distinct user ids, ratings order
	GET /api/v1/users/{userID}/recommendations    ?min_score=&limit=&q=&posters=
	GET /api/v1/users/{userID}/history            ?sort=rating_desc|rating_asc|title_asc|title_desc
	GET /api/v1/movies/{movieID}/poster           poster resolution result
	GET /api/v1/health/live                       liveness
	GET /api/v1/health/ready                      503 until the dataset is loaded
	GET /metrics                                  Prometheus exposition

JSON responses share one envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0, "count": 3}}
	{"success": false, "error": {"code": "VALIDATION_FAILED", "message": "...", "details": {...}}, "meta": {...}}

Invalid query parameters are answered with 400 VALIDATION_FAILED. An unknown
user is not an error: its recommendation and history lists are empty. An
unknown movie id is a 404.

Middleware, outermost first: request id, real IP, panic recovery, request
logging, Prometheus metrics, CORS, security headers, gzip. Rate limiting is
applied per route group with go-chi/httprate; health probes get a more
permissive budget and /metrics none.

Usage:

	h, err := api.NewHandler(api.HandlerDeps{
	    Data:      loader,
	    Pipelines: engine,
	    Posters:   resolver,
	    Renderer:  renderer,
	    UI:        cfg.UI,
	})
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	srv := &http.Server{Handler: api.NewRouter(h, mw, cfg.TMDB.ImageBaseURL).SetupChi()}
*/
package api
