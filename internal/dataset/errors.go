// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a table file does not exist.
	ErrFileNotFound = errors.New("dataset file not found")

	// ErrMissingColumn is wrapped by a ParseError when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyFile is wrapped by a ParseError when a file has no header row.
	ErrEmptyFile = errors.New("file has no header row")
)

// ParseError describes a malformed table. Line is 1-based and counts the
// header; Column is empty when the error is not tied to one column.
type ParseError struct {
	File   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s:%d: column %q: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
