package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the backend. Message is the backend's
// human-readable explanation when the body carried one, "" otherwise;
// callers choose their own fallback text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: %d", e.StatusCode)
}

// MessageOr returns the backend message, or fallback when the backend did
// not supply one. Never a raw body or empty string.
func (e *APIError) MessageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// ErrorMessage extracts a user-facing message from any error returned by
// this package, preferring the backend-provided text.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.MessageOr(fallback)
	}
	return fallback
}

// errorBody matches the backend's error conventions: either a message field
// or a FastAPI-style detail field.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func errorFromResponse(statusCode int, raw []byte) *APIError {
	var body errorBody
	// A malformed error body still yields a usable APIError.
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = body.Detail
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
