package errors

import (
	"errors"
	"fmt"
)

// AppError represents a pipeline error with additional context
type AppError struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"` // upstream HTTP status, when relevant
	Code       string `json:"code,omitempty"`        // application-level error code from the remote system
	Internal   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Error kinds, one per failure class the pipeline can hit
const (
	KindConfig          = "CONFIG_ERROR"
	KindConnectivity    = "CONNECTIVITY_ERROR"
	KindUpstream        = "UPSTREAM_ERROR"
	KindDeserialization = "DESERIALIZATION_ERROR"
	KindPublishRejected = "PUBLISH_REJECTED"
)

// Exit codes per kind. Anything unrecognized exits 1.
const (
	ExitOK              = 0
	ExitGeneric         = 1
	ExitConfig          = 2
	ExitConnectivity    = 3
	ExitUpstream        = 4
	ExitDeserialization = 5
	ExitPublishRejected = 6
)

// New creates a new AppError
func New(kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(err error, kind, message string) *AppError {
	return &AppError{
		Kind:     kind,
		Message:  message,
		Internal: err,
	}
}

// Common error constructors

// Config creates a configuration error
func Config(message string) *AppError {
	return New(KindConfig, message)
}

// Connectivity creates an error for an unreachable remote host
func Connectivity(system string, err error) *AppError {
	return Wrap(err, KindConnectivity, fmt.Sprintf("failed to reach %s", system))
}

// Upstream creates an error for an unexpected HTTP status from a remote host
func Upstream(system string, statusCode int, body string) *AppError {
	e := New(KindUpstream, fmt.Sprintf("%s returned status %d: %s", system, statusCode, body))
	e.StatusCode = statusCode
	return e
}

// Deserialization creates an error for a response body that does not match
// the expected shape
func Deserialization(system string, err error) *AppError {
	return Wrap(err, KindDeserialization, fmt.Sprintf("failed to parse response from %s", system))
}

// PublishRejected creates an error for a request the messaging system
// accepted at the HTTP level but rejected at the application level
func PublishRejected(code string) *AppError {
	e := New(KindPublishRejected, fmt.Sprintf("slack rejected the message: %s", code))
	e.Code = code
	return e
}

// KindOf returns the kind of err, or "" if err is not an AppError
func KindOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindConfig:
		return ExitConfig
	case KindConnectivity:
		return ExitConnectivity
	case KindUpstream:
		return ExitUpstream
	case KindDeserialization:
		return ExitDeserialization
	case KindPublishRejected:
		return ExitPublishRejected
	default:
		return ExitGeneric
	}
}
