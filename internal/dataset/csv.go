// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// row is a single CSV record addressed by header name.
type row struct {
	file   string
	line   int
	idx    map[string]int
	fields []string
}

func (r row) str(col string) string {
	return r.fields[r.idx[col]]
}

func (r row) fail(col string, err error) error {
	return &ParseError{File: r.file, Line: r.line, Column: col, Err: err}
}

func (r row) int64(col string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(r.str(col)), 10, 64)
	if err != nil {
		return 0, r.fail(col, err)
	}
	return v, nil
}

func (r row) float64(col string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.str(col)), 64)
	if err != nil {
		return 0, r.fail(col, err)
	}
	return v, nil
}

// optionalID parses an id cell that may be empty or float-formatted
// ("862.0"), as produced by tools that widen integer columns containing
// nulls.
func (r row) optionalID(col string) (*int64, error) {
	s := strings.TrimSpace(r.str(col))
	if s == "" {
		return nil, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, r.fail(col, err)
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, r.fail(col, fmt.Errorf("%q is not an integer id", s))
	}
	v := int64(f)
	return &v, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// readTable streams path through fn, one call per data row. required lists
// the header names that must be present.
func readTable(path string, required []string, fn func(row) error) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &ParseError{File: path, Line: 1, Err: ErrEmptyFile}
		}
		return &ParseError{File: path, Line: 1, Err: err}
	}
	idx := headerIndex(header)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return &ParseError{File: path, Line: 1, Column: col, Err: ErrMissingColumn}
		}
	}

	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return &ParseError{File: path, Line: line, Err: err}
		}
		if err := fn(row{file: path, line: line, idx: idx, fields: fields}); err != nil {
			return err
		}
	}
}
