package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
)

// RemoteError represents a rejection reported by the helpdesk backend. The
// Message carries the backend's diagnostic text verbatim.
type RemoteError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Action     string `json:"action,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *RemoteError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("helpdesk API error (%d) during %s: %s", e.StatusCode, e.Action, e.Message)
	}
	return fmt.Sprintf("helpdesk API error (%d): %s", e.StatusCode, e.Message)
}

// NewRemoteError creates a new remote error
func NewRemoteError(statusCode int, message, action, requestID string) *RemoteError {
	return &RemoteError{
		StatusCode: statusCode,
		Message:    message,
		Action:     action,
		RequestID:  requestID,
	}
}

// TransportError represents a failure to reach the backend or to complete an
// exchange with it: connection failures, timeouts, TLS failures, and response
// bodies that could not be decoded.
type TransportError struct {
	Operation string `json:"operation"`
	URL       string `json:"url"`
	Err       error  `json:"error"`
	Timeout   bool   `json:"timeout"`
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout during %s to %s: %v", e.Operation, e.URL, e.Err)
	}
	return fmt.Sprintf("network error during %s to %s: %v", e.Operation, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport error, detecting whether the
// underlying failure was a timeout.
func NewTransportError(operation, url string, err error) *TransportError {
	timeout := false
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	} else if stderrors.Is(err, context.DeadlineExceeded) {
		timeout = true
	}
	return &TransportError{
		Operation: operation,
		URL:       url,
		Err:       err,
		Timeout:   timeout,
	}
}

// ConfigError represents an invalid client configuration detected before any
// request is made.
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// NewConfigError creates a new configuration error
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// ValidationError represents an input rejected locally before any request is
// made.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsRemoteError checks if an error is a backend rejection
func IsRemoteError(err error) bool {
	_, ok := err.(*RemoteError)
	return ok
}

// IsNotFound checks if an error is a 404 backend rejection
func IsNotFound(err error) bool {
	if remoteErr, ok := err.(*RemoteError); ok {
		return remoteErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if an error is a 401 backend rejection
func IsUnauthorized(err error) bool {
	if remoteErr, ok := err.(*RemoteError); ok {
		return remoteErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsTransportError checks if an error is a transport failure
func IsTransportError(err error) bool {
	_, ok := err.(*TransportError)
	return ok
}

// IsTimeout checks if an error is a transport timeout
func IsTimeout(err error) bool {
	if transportErr, ok := err.(*TransportError); ok {
		return transportErr.Timeout
	}
	return false
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	_, ok := err.(*ConfigError)
	return ok
}

// IsValidationError checks if an error is a local validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
