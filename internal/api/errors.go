package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/invtop/invtop/internal/util"
)

// StatusError is returned when the server answers with a non-2xx
// status. Detail carries the server's own message when the body is a
// DRF-style {"detail": "..."} object.
type StatusError struct {
	StatusCode int
	URL        string
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d for %s: %s", e.StatusCode, e.URL, e.Detail)
	}
	return fmt.Sprintf("server returned %d for %s", e.StatusCode, e.URL)
}

// Unauthorized reports whether the error is an authentication failure.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NotFound reports whether the error is a missing record.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unwrap maps common statuses onto the shared sentinels so callers
// can use errors.Is without inspecting status codes.
func (e *StatusError) Unwrap() error {
	switch {
	case e.NotFound():
		return util.ErrNotFound
	case e.Unauthorized():
		return util.ErrUnauthorized
	}
	return nil
}

func newStatusError(status int, url string, body []byte) *StatusError {
	e := &StatusError{StatusCode: status, URL: url}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Detail = payload.Detail
	}
	return e
}
