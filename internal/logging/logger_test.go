// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("Timestamp = false, want true")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	if !ValidLevel("Info") {
		t.Error("ValidLevel(Info) = false")
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true")
	}
}

//nolint:paralleltest // mutates the global logger
func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("file", "ratings.csv").Msg("loaded")

	out := buf.String()
	if !strings.Contains(out, `"message":"loaded"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"service":"reelview"`) {
		t.Errorf("output missing service field: %s", out)
	}
	if !strings.Contains(out, `"file":"ratings.csv"`) {
		t.Errorf("output missing field: %s", out)
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")

	Ctx(ctx).Info().Msg("hello")

	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("request_id missing: %s", buf.String())
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context returned a request ID")
	}
}

func TestSlogHandlerGroupsAndLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))

	logger.Debug("dropped")
	logger.WithGroup("supervisor").Warn("restart", slog.String("service", "http"), slog.Int("attempt", 2))

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("debug record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"supervisor.service":"http"`) {
		t.Errorf("grouped key missing: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("warn level missing: %s", out)
	}
}

func TestSlogHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).
		With(slog.String("layer", "api-layer"))

	logger.Error("service failed", slog.Any("err", errors.New("bind: address already in use")))

	out := buf.String()
	for _, want := range []string{`"layer":"api-layer"`, `"err":"bind: address already in use"`, `"level":"error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}
