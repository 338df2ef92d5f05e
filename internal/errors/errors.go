package errors

import (
	"errors"
	"net/http"

	"github.com/Shubham-2704/AgriNova/internal/authflow"
	"github.com/Shubham-2704/AgriNova/internal/backend"
	"github.com/Shubham-2704/AgriNova/internal/dashboard"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// validationCodes maps local pre-flight errors to stable response codes.
// These never reach the backend.
var validationCodes = map[error]string{
	authflow.ErrPasswordMismatch:  "PASSWORD_MISMATCH",
	authflow.ErrWeakPassword:      "WEAK_PASSWORD",
	authflow.ErrTermsNotAccepted:  "TERMS_NOT_ACCEPTED",
	authflow.ErrOTPFormat:         "OTP_FORMAT",
	dashboard.ErrInvalidArea:      "INVALID_AREA",
	dashboard.ErrInvalidSelection: "INVALID_SELECTION",
	dashboard.ErrOptionsNotLoaded: "OPTIONS_NOT_LOADED",
	dashboard.ErrWeatherNotLoaded: "WEATHER_NOT_LOADED",
}

// MapErrorToHTTP maps domain errors to HTTP errors. Backend errors keep
// their status and human-readable message; anything unknown becomes a
// generic 500 with no internal detail leaked.
func MapErrorToHTTP(err error) *HTTPError {
	if code, ok := validationCodes[err]; ok {
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), code)
	}
	switch {
	case errors.Is(err, authflow.ErrResendNotReady):
		return NewHTTPError(http.StatusTooEarly, err.Error(), "RESEND_NOT_READY")
	case errors.Is(err, authflow.ErrRequestInFlight):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_IN_FLIGHT")
	case errors.Is(err, authflow.ErrNoActiveFlow):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_ACTIVE_FLOW")
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return NewHTTPError(apiErr.StatusCode, apiErr.MessageOr("request failed"), "BACKEND_ERROR")
	}

	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
