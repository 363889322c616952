// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelview/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, *validation.RequestValidationError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, validation.NewFieldError(name, "numeric", raw, name+" must be a non-negative integer")
	}
	return id, nil
}

// recommendationsQuery is the validated query of the recommendations endpoint.
type recommendationsQuery struct {
	MinScore float64 `query:"min_score" validate:"gte=0,lte=5"`
	Limit    int     `query:"limit" validate:"min=1"`
	Query    string  `query:"q" validate:"max=200"`
	Posters  bool    `query:"posters"`
}

// parseRecommendationsQuery reads min_score, limit, q and posters. Absent
// values take the UI defaults; limit is capped by maxLimit.
func parseRecommendationsQuery(r *http.Request, defMinScore float64, defLimit, maxLimit int) (recommendationsQuery, *validation.RequestValidationError) {
	values := r.URL.Query()
	q := recommendationsQuery{MinScore: defMinScore, Limit: defLimit}

	if raw := strings.TrimSpace(values.Get("min_score")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			return q, validation.NewFieldError("min_score", "numeric", raw, "min_score must be a number")
		}
		q.MinScore = v
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, validation.NewFieldError("limit", "numeric", raw, "limit must be an integer")
		}
		q.Limit = v
	}
	if raw := strings.TrimSpace(values.Get("posters")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, validation.NewFieldError("posters", "boolean", raw, "posters must be true or false")
		}
		q.Posters = v
	}
	q.Query = strings.TrimSpace(values.Get("q"))

	if verr := validation.ValidateStruct(&q); verr != nil {
		return q, verr
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		return q, validation.NewFieldError("limit", "max", q.Limit, fmt.Sprintf("limit must be at most %d", maxLimit))
	}
	return q, nil
}

// historyQuery is the validated query of the history endpoint.
type historyQuery struct {
	Sort string `query:"sort" validate:"omitempty,history_sort"`
}
