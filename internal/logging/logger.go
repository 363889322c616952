// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

// Package logging wraps a single process-wide zerolog logger.
//
// Call Init once from main after configuration is loaded:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("users", n).Msg("Dataset loaded")
//
// Log chains must end with Msg or Send, otherwise nothing is written.
// Every entry carries service=reelview so the lines can be told apart in a
// shared collector.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is one of trace, debug, info, warn, error or disabled.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Timestamp adds a "time" field.
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig is JSON at info level on stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Timestamp: true, Output: os.Stderr}
}

const serviceName = "reelview"

var (
	mu     sync.RWMutex
	global = build(DefaultConfig())
)

// Init replaces the global logger. It may be called again, e.g. after the
// configuration file changed.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	zc := zerolog.New(out).With().Str("service", serviceName)
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return zc.Logger()
}

// parseLevel maps a level name to zerolog. "warning" is accepted for warn;
// anything unknown, including "", means info.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return zerolog.InfoLevel
	case "warning":
		level = "warn"
	case "disabled":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// ValidLevel reports whether level may appear in configuration.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled":
		return true
	}
	return false
}

func current() *zerolog.Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	return &l
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *current()
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// Debug starts a debug-level entry on the global logger.
func Debug() *zerolog.Event { return current().Debug() }

// Info starts an info-level entry on the global logger.
func Info() *zerolog.Event { return current().Info() }

// Warn starts a warn-level entry on the global logger.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts an error-level entry on the global logger.
func Error() *zerolog.Event { return current().Error() }

// Fatal starts a fatal entry; the process exits after Msg.
//
//	logging.Fatal().Err(err).Msg("Failed to load dataset")
func Fatal() *zerolog.Event { return current().Fatal() }

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return current().With().Str("component", component).Logger()
}

// NewTestLogger creates a JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
