// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelview/internal/api"
	"github.com/tomtom215/reelview/internal/config"
	"github.com/tomtom215/reelview/internal/dataset"
	"github.com/tomtom215/reelview/internal/logging"
	"github.com/tomtom215/reelview/internal/recommend"
	"github.com/tomtom215/reelview/internal/supervisor"
	"github.com/tomtom215/reelview/internal/supervisor/services"
	"github.com/tomtom215/reelview/internal/ui"
)

// posterCachePruneInterval is how often expired poster lookups are evicted.
const posterCachePruneInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(loggingConfig(cfg))

	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Str("environment", cfg.Server.Environment).
		Bool("posters", cfg.TMDB.PostersEnabled()).
		Msg("Starting Reelview")

	if path := config.ConfigFile(); path != "" {
		watchLoggingConfig(path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The tables are read once, before anything is served. A missing or
	// malformed file stops the process here.
	loader := dataset.NewLoader(datasetFiles(cfg.Data))
	ds, err := loader.Load(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	engine, err := recommend.NewEngine(ds, engineConfig(cfg.UI))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	resolver := newPosterResolver(cfg.TMDB)
	if !resolver.Enabled() {
		logging.Warn().Msg("Poster lookups disabled: set TMDB_API_KEY to show movie posters")
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse page templates")
	}

	handler, err := api.NewHandler(api.HandlerDeps{
		Data:      loader,
		Pipelines: engine,
		Posters:   resolver,
		Renderer:  renderer,
		UI:        cfg.UI,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create HTTP handler")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().
			Strs("cors_origins", cfg.Security.CORSOrigins).
			Msg("CORS allows any origin in production; set CORS_ORIGINS to the sites that embed Reelview")
	}

	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	router := api.NewRouter(handler, chiMW, cfg.TMDB.ImageBaseURL)

	// WriteTimeout must cover a full page render, whose poster lookups run
	// serially and are each bounded by the metadata client timeout.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	if resolver.Enabled() {
		tree.AddMaintenanceService(services.NewPosterCacheService(
			resolver, posterCachePruneInterval, logging.WithComponent("supervisor")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Reelview stopped")
}
