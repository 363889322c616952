// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler is an slog.Handler writing through zerolog. The supervisor
// tree logs its events with it via sutureslog.
//
// Attributes given to WithAttrs are folded into the zerolog context once, so
// only per-record attributes cost anything at write time.
type SlogHandler struct {
	logger zerolog.Logger
	prefix string // open groups joined with "."
}

// NewSlogHandlerWithLogger wraps logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger returns an slog.Logger backed by the current global logger.
//
//	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandlerWithLogger(Logger().With().Str("component", "supervisor").Logger()))
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := zerologLevel(level)
	return zl >= h.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Record is passed by value per slog.Handler interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(zerologLevel(record.Level))
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(event, h.prefix, a)
		return true
	})
	event.Msg(record.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	zc := h.logger.With()
	for _, a := range attrs {
		zc = zc.Interface(h.prefix+a.Key, a.Value.Resolve().Any())
	}
	return &SlogHandler{logger: zc.Logger(), prefix: h.prefix}
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, prefix: h.prefix + name + "."}
}

func appendAttr(event *zerolog.Event, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	key := prefix + a.Key
	switch v.Kind() {
	case slog.KindGroup:
		group := key + "."
		if a.Key == "" {
			group = prefix
		}
		for _, ga := range v.Group() {
			appendAttr(event, group, ga)
		}
	case slog.KindString:
		event.Str(key, v.String())
	case slog.KindInt64:
		event.Int64(key, v.Int64())
	case slog.KindUint64:
		event.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		event.Float64(key, v.Float64())
	case slog.KindBool:
		event.Bool(key, v.Bool())
	case slog.KindDuration:
		event.Dur(key, v.Duration())
	case slog.KindTime:
		event.Time(key, v.Time())
	default:
		if err, ok := v.Any().(error); ok {
			event.AnErr(key, err)
			return
		}
		event.Interface(key, v.Any())
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	case level >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
