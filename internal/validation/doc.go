// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// metadata so repeated validation of the same query struct is cheap.
// Errors name fields by their `query` tag, so a failing MinScore field is
// reported as "min_score", and convert to the API's VALIDATION_FAILED error.
//
// Custom tags:
//   - history_sort: rating_desc, rating_asc, title_asc or title_desc
//
// Example:
//
//	type recsQuery struct {
//	    MinScore float64 `query:"min_score" validate:"gte=0,lte=5"`
//	    Limit    int     `query:"limit" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // 400 with apiErr.Code == "VALIDATION_FAILED"
//	}
package validation
