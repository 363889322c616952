// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockService runs until cancelled, optionally failing its first maxFails starts.
type mockService struct {
	name       string
	maxFails   int32
	startCount atomic.Int32
}

var _ suture.Service = (*mockService)(nil)

func (m *mockService) Serve(ctx context.Context) error {
	if n := m.startCount.Add(1); n <= m.maxFails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string { return m.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNewSupervisorTreeDefaults(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor should not be nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
	}
}

func TestSupervisorTreeStartsBothLayers(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	janitor := &mockService{name: "janitor"}
	httpSvc := &mockService{name: "http"}
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(httpSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, time.Second, func() bool {
		return janitor.startCount.Load() > 0 && httpSvc.startCount.Load() > 0
	}) {
		t.Error("services were not started")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("unstopped services = %v, err = %v", report, err)
	}
}

func TestSupervisorTreeRestartsFailingMaintenance(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	failing := &mockService{name: "failing-janitor", maxFails: 2}
	stable := &mockService{name: "http"}
	tree.AddMaintenanceService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, time.Second, func() bool { return failing.startCount.Load() >= 3 }) {
		t.Errorf("failing service started %d times, want >= 3", failing.startCount.Load())
	}
	if got := stable.startCount.Load(); got != 1 {
		t.Errorf("api service started %d times, want 1 (not affected by the other layer)", got)
	}

	cancel()
	<-errCh
}

func TestNewSupervisorTreeRejectsNegative(t *testing.T) {
	if _, err := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: -time.Second}); err == nil {
		t.Error("negative shutdown timeout should be rejected")
	}
}

func TestTreeConfigWithDefaultsKeepsSetFields(t *testing.T) {
	got := TreeConfig{FailureBackoff: time.Second}.withDefaults()
	want := DefaultTreeConfig()
	want.FailureBackoff = time.Second
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}
}
