package gosign

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an API failure by its HTTP status.
type ErrorKind string

const (
	// KindInvalidInput means the API rejected the request body (HTTP 400).
	KindInvalidInput ErrorKind = "invalid_input"
	// KindUnauthorized means the API key was missing or wrong (HTTP 401).
	KindUnauthorized ErrorKind = "unauthorized"
	// KindForbidden means the key is valid but lacks access (HTTP 403).
	KindForbidden ErrorKind = "forbidden"
	// KindRateLimited means the request quota was exceeded (HTTP 429).
	KindRateLimited ErrorKind = "rate_limited"
	// KindServerError means the API failed internally (HTTP 5xx).
	KindServerError ErrorKind = "server_error"
	// KindUnknown covers any other non-success status.
	KindUnknown ErrorKind = "unknown"
)

// KindForStatus maps an HTTP status code to an ErrorKind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == 400:
		return KindInvalidInput
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}

// ConfigError indicates invalid client configuration.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// ValidationError indicates a request was rejected locally, before any
// network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// APIError indicates the API returned a non-success HTTP status.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string // Message from the API response body, if any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d %s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("api error (%d %s)", e.StatusCode, e.Kind)
}

// Retryable reports whether the failure is worth retrying with backoff.
func (e *APIError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindServerError
}

// TimeoutError indicates the request exceeded the configured timeout.
// No partial result is returned and nothing is cached.
type TimeoutError struct {
	Operation string
	Cause     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Operation, e.Cause)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// NetworkError indicates a connection-level failure, distinct from a
// received error status.
type NetworkError struct {
	Operation string
	Cause     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s network failure: %v", e.Operation, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// IsRetryable checks if an error is worth retrying with backoff.
// Rate limits, server errors and transport failures qualify; validation
// and authorization failures do not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	return false
}

// Advice returns the user-facing guidance string for an error:
// unauthorized failures point at configuration, rate limits and server
// errors suggest a later retry, and everything else passes through so
// the API's own message stays visible.
func Advice(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindUnauthorized:
			return "check configuration"
		case KindRateLimited, KindServerError:
			return "try again later"
		}
	}

	return err.Error()
}
