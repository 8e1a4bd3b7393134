// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package summarize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// MaxBodyInMessage caps how much of a raw error body reaches the message.
const MaxBodyInMessage = 200

// FieldViolation is one entry of a validation error payload.
type FieldViolation struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Field joins the location path, e.g. "body.count".
func (v FieldViolation) Field() string {
	parts := make([]string, 0, len(v.Loc))
	for _, p := range v.Loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

// APIError is returned for any non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string           // "detail" when it is a plain string
	Violations []FieldViolation // "detail" when it is a validation list
	Body       string           // raw body, trimmed
}

func (e *APIError) Error() string {
	if len(e.Violations) > 0 {
		msgs := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			if f := v.Field(); f != "" {
				msgs = append(msgs, f+": "+v.Msg)
			} else {
				msgs = append(msgs, v.Msg)
			}
		}
		return "Validation Error: " + strings.Join(msgs, "; ")
	}
	if e.Detail != "" {
		return e.Detail
	}
	body := compactBody(e.Body)
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, body)
}

// IsValidation reports whether the backend rejected the request body.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// IsValidationError reports whether err wraps a validation APIError.
func IsValidationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsValidation()
}

// newAPIError decodes the backend's error payload on a best-effort basis.
// The detail is either a string or a list of field violations; anything
// else leaves only the raw body.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(bytes.TrimSpace(body)),
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	var violations []FieldViolation
	if err := json.Unmarshal(payload.Detail, &violations); err == nil {
		apiErr.Violations = violations
	}
	return apiErr
}

// compactBody folds a raw body onto one line and caps its width, so HTML
// error pages from proxies stay a single readable message.
func compactBody(body string) string {
	return ansi.Truncate(strings.Join(strings.Fields(body), " "), MaxBodyInMessage, "…")
}
