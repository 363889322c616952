// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package supervisor provides process supervision for Reelview using suture v4.

# Overview

Long-running services are organized into two layers for failure isolation:

	RootSupervisor ("reelview")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── PosterCacheService (when posters are enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The dataset is loaded before the tree starts and is immutable afterwards,
so nothing in the data path needs supervising. A failure to load is fatal
at startup instead.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMaintenanceService(services.NewPosterCacheService(resolver, 10*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Above FailureThreshold the supervisor waits FailureBackoff before the next
restart. Supervisor events go through sutureslog to the slog logger, which
Reelview backs with zerolog.

Return behavior of a service:
  - error: crashed, restarted with backoff
  - suture.ErrDoNotRestart: finished for good
  - ctx.Err() after cancellation: shutdown requested

If services do not stop within ShutdownTimeout, UnstoppedServiceReport
lists them.
*/
package supervisor
