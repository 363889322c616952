// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig controls restart backoff and shutdown. Zero fields take the
// value from DefaultTreeConfig.
type TreeConfig struct {
	// FailureThreshold is the decayed failure count that triggers backoff.
	FailureThreshold float64

	// FailureDecay is the failure half-life in seconds.
	FailureDecay float64

	// FailureBackoff is how long a layer pauses restarts once over threshold.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long each service gets to return after
	// cancellation.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

func (c TreeConfig) validate() error {
	if c.FailureThreshold < 0 || c.FailureDecay < 0 || c.FailureBackoff < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("supervisor tree config must not be negative: %+v", c)
	}
	return nil
}

func (c TreeConfig) spec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// SupervisorTree is the process supervision hierarchy:
//
//	reelview
//	├── maintenance-layer   poster cache janitor
//	└── api-layer           HTTP server
//
// A janitor that keeps failing backs off on its own without taking the
// HTTP server with it.
type SupervisorTree struct {
	root        *suture.Supervisor
	maintenance *suture.Supervisor
	api         *suture.Supervisor
	config      TreeConfig
}

// NewSupervisorTree builds the tree. Supervisor events (restarts, backoff,
// stop timeouts) are written to logger through sutureslog.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	// Layers added to root inherit its EventHook.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()
	t := &SupervisorTree{
		root:        suture.New("reelview", config.spec(hook)),
		maintenance: suture.New("maintenance-layer", config.spec(nil)),
		api:         suture.New("api-layer", config.spec(nil)),
		config:      config,
	}
	t.root.Add(t.maintenance)
	t.root.Add(t.api)
	return t, nil
}

// Root returns the root supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// AddMaintenanceService adds a background housekeeping service.
func (t *SupervisorTree) AddMaintenanceService(svc suture.Service) suture.ServiceToken {
	return t.maintenance.Add(svc)
}

// AddAPIService adds a request-serving service.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is cancelled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives the
// result of Serve.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that outlived ShutdownTimeout.
// Only meaningful after Serve has returned.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
