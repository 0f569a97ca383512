package client

import (
	"errors"
	"net/http"
	"strconv"
)

// Errors for input validation.
var (
	ErrEndpointRequired = errors.New("server endpoint is required")
	ErrEmptyPath        = errors.New("path is required")
)

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for the status codes the gallery server returns.
var (
	// ErrNotFound is returned when a file does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrServer is returned when a listing fails on the server (500).
	// This covers missing folders and folders outside the gallery root.
	ErrServer = &APIError{StatusCode: http.StatusInternalServerError}
)
