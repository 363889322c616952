// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package ui

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelview/internal/config"
	"github.com/tomtom215/reelview/internal/models"
	"github.com/tomtom215/reelview/internal/validation"
)

// ViewState is the snapshot of every sidebar and page control. A page is a
// pure function of it: Render(ctx, deps, state).
type ViewState struct {
	UserID   int64
	MinScore float64
	Limit    int
	Query    string
	Sort     models.HistorySort
}

// Defaults seed a ViewState for absent parameters.
type Defaults struct {
	MinScore float64
	Limit    int
	MaxLimit int
}

// DefaultsFromConfig maps the UI section of the configuration.
func DefaultsFromConfig(cfg config.UIConfig) Defaults {
	return Defaults{MinScore: cfg.DefaultMinScore, Limit: cfg.DefaultLimit, MaxLimit: cfg.MaxLimit}
}

// UserSet is the user selector's domain.
type UserSet interface {
	Users() []int64
	HasUser(userID int64) bool
}

// viewQuery is the validated shape of the page query string.
type viewQuery struct {
	MinScore float64 `query:"min_score" validate:"gte=0,lte=5"`
	Limit    int     `query:"limit" validate:"min=1"`
	Query    string  `query:"q" validate:"max=200"`
	Sort     string  `query:"sort" validate:"omitempty,history_sort"`
}

// DefaultState returns the state shown for a bare "/" request.
func DefaultState(d Defaults, users UserSet) ViewState {
	return ViewState{
		UserID:   firstUser(users),
		MinScore: SnapScore(d.MinScore),
		Limit:    d.Limit,
		Sort:     models.HistoryRatingDesc,
	}
}

// ParseViewState decodes a page query string. An absent or unknown user
// falls back to the first user in ratings order. On a validation error the
// returned state is DefaultState, so the caller can re-render with a notice.
func ParseViewState(values url.Values, d Defaults, users UserSet) (ViewState, *validation.RequestValidationError) {
	fallback := DefaultState(d, users)
	state := fallback

	if raw := strings.TrimSpace(values.Get("user")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fallback, validation.NewFieldError("user", "numeric", raw, "user must be an integer user id")
		}
		if users != nil && users.HasUser(id) {
			state.UserID = id
		}
	}

	q := viewQuery{MinScore: fallback.MinScore, Limit: fallback.Limit, Sort: string(fallback.Sort)}

	if raw := strings.TrimSpace(values.Get("min_score")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			return fallback, validation.NewFieldError("min_score", "numeric", raw, "min_score must be a number")
		}
		q.MinScore = v
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fallback, validation.NewFieldError("limit", "numeric", raw, "limit must be an integer")
		}
		q.Limit = v
	}
	q.Query = strings.TrimSpace(values.Get("q"))
	if raw := values.Get("sort"); raw != "" {
		q.Sort = raw
	}

	if verr := validation.ValidateStruct(&q); verr != nil {
		return fallback, verr
	}
	if d.MaxLimit > 0 && q.Limit > d.MaxLimit {
		return fallback, validation.NewFieldError("limit", "max", q.Limit,
			fmt.Sprintf("limit must be at most %d", d.MaxLimit))
	}

	state.MinScore = SnapScore(q.MinScore)
	state.Limit = q.Limit
	state.Query = q.Query
	state.Sort = models.HistorySort(q.Sort)
	return state, nil
}

// SnapScore rounds a threshold to the slider's 0.1 step.
func SnapScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// Values encodes the state as a page query string.
func (s ViewState) Values() url.Values {
	v := url.Values{}
	v.Set("user", strconv.FormatInt(s.UserID, 10))
	v.Set("min_score", strconv.FormatFloat(s.MinScore, 'f', 1, 64))
	v.Set("limit", strconv.Itoa(s.Limit))
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Sort != "" && s.Sort != models.HistoryRatingDesc {
		v.Set("sort", string(s.Sort))
	}
	return v
}

// WithSort returns a copy of s ordered by sort.
func (s ViewState) WithSort(sort models.HistorySort) ViewState {
	s.Sort = sort
	return s
}

func firstUser(users UserSet) int64 {
	if users == nil {
		return 0
	}
	if ids := users.Users(); len(ids) > 0 {
		return ids[0]
	}
	return 0
}
