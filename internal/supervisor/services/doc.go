// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

/*
Package services provides suture.Service wrappers for Reelview components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve and names itself through fmt.Stringer for supervisor logs:

  - HTTPServerService wraps *http.Server. ListenAndServe runs in a
    goroutine; context cancellation triggers Shutdown with a bounded
    timeout so in-flight page renders can finish.
  - PosterCacheService prunes expired poster lookups on a ticker.

Returning an error from Serve asks the supervisor to restart the service
with backoff; returning ctx.Err() after cancellation is a clean stop.
*/
package services
