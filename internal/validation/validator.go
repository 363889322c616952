// Reelview - MovieLens Recommendation Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelview

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/reelview/internal/models"
)

// ErrorCode is the API error code for any request validation failure.
const ErrorCode = "VALIDATION_FAILED"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one rejected request parameter.
type FieldError struct {
	Field   string      // parameter name as sent, e.g. "min_score"
	Tag     string      // failing rule, e.g. "lte" or "numeric"
	Value   interface{} // offending value
	Message string
}

func (e FieldError) Error() string { return e.Message }

// RequestValidationError carries every FieldError of one request, in
// struct declaration order.
type RequestValidationError struct {
	errs []FieldError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errs
}

// Fields lists the failing parameter names.
func (ve *RequestValidationError) Fields() []string {
	out := make([]string, len(ve.errs))
	for i, fe := range ve.errs {
		out[i] = fe.Field
	}
	return out
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errs) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errs))
	for i, fe := range ve.errs {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// APIError is the payload of a 400 response. It mirrors the API error body
// without importing the api package.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts to the API error body. A single failure puts field,
// tag and value in Details; several are listed under Details["fields"].
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errs) {
	case 0:
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	case 1:
		fe := ve.errs[0]
		return &APIError{
			Code:    ErrorCode,
			Message: fe.Message,
			Details: map[string]interface{}{"field": fe.Field, "tag": fe.Tag, "value": fe.Value},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errs))
	for i, fe := range ve.errs {
		fields[i] = map[string]interface{}{"field": fe.Field, "tag": fe.Tag, "message": fe.Message}
	}
	return &APIError{
		Code:    ErrorCode,
		Message: ve.Error(),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator. Field names in errors come from
// the `query` struct tag, falling back to `json`, so messages name the
// parameter the client actually sent.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(paramName)
		_ = validate.RegisterValidation("history_sort", func(fl validator.FieldLevel) bool {
			return models.HistorySort(fl.Field().String()).Valid()
		})
	})
	return validate
}

func paramName(field reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return field.Name
}

// ValidateStruct validates s and returns nil or the collected field errors.
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    w.ValidationError(verr)
//	    return
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewFieldError("request", "invalid", nil, err.Error())
	}

	ve := &RequestValidationError{errs: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		ve.errs[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return ve
}

// NewFieldError builds a single-field error for checks made before struct
// validation, such as a query value that does not parse.
func NewFieldError(field, tag string, value interface{}, msg string) *RequestValidationError {
	return &RequestValidationError{errs: []FieldError{{Field: field, Tag: tag, Value: value, Message: msg}}}
}

var messages = map[string]func(field, param string, isString bool) string{
	"required": func(f, _ string, _ bool) string { return f + " is required" },
	"numeric":  func(f, _ string, _ bool) string { return f + " must be a number" },
	"history_sort": func(f, _ string, _ bool) string {
		return f + " must be one of: " + strings.Join(models.HistorySortNames(), ", ")
	},
	"oneof": func(f, p string, _ bool) string { return fmt.Sprintf("%s must be one of: %s", f, p) },
	"gte":   func(f, p string, _ bool) string { return fmt.Sprintf("%s must be greater than or equal to %s", f, p) },
	"lte":   func(f, p string, _ bool) string { return fmt.Sprintf("%s must be less than or equal to %s", f, p) },
	"gt":    func(f, p string, _ bool) string { return fmt.Sprintf("%s must be greater than %s", f, p) },
	"lt":    func(f, p string, _ bool) string { return fmt.Sprintf("%s must be less than %s", f, p) },
	"min": func(f, p string, s bool) string {
		if s {
			return fmt.Sprintf("%s must be at least %s characters", f, p)
		}
		return fmt.Sprintf("%s must be at least %s", f, p)
	},
	"max": func(f, p string, s bool) string {
		if s {
			return fmt.Sprintf("%s must be at most %s characters", f, p)
		}
		return fmt.Sprintf("%s must be at most %s", f, p)
	},
}

func message(fe validator.FieldError) string {
	if fn, ok := messages[fe.Tag()]; ok {
		return fn(fe.Field(), fe.Param(), fe.Kind() == reflect.String)
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
