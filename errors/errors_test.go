package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

// timeoutNetError satisfies net.Error for timeout classification tests.
type timeoutNetError struct{}

func (timeoutNetError) Error() string   { return "i/o timeout" }
func (timeoutNetError) Timeout() bool   { return true }
func (timeoutNetError) Temporary() bool { return true }

func TestRemoteError(t *testing.T) {
	err := NewRemoteError(http.StatusNotFound, "Ticket 99 not found", "GetTicket", "req-1")

	if !IsRemoteError(err) {
		t.Error("expected IsRemoteError to be true")
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if IsTransportError(err) {
		t.Error("remote error must not classify as transport error")
	}
	if !strings.Contains(err.Error(), "Ticket 99 not found") {
		t.Errorf("backend message missing from %q", err.Error())
	}
	if !strings.Contains(err.Error(), "GetTicket") {
		t.Errorf("action missing from %q", err.Error())
	}
}

func TestRemoteErrorStatusPredicates(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		notFound     bool
		unauthorized bool
	}{
		{name: "not found", status: http.StatusNotFound, notFound: true},
		{name: "unauthorized", status: http.StatusUnauthorized, unauthorized: true},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRemoteError(tt.status, "backend said no", "", "")
			if got := IsNotFound(err); got != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tt.notFound)
			}
			if got := IsUnauthorized(err); got != tt.unauthorized {
				t.Errorf("IsUnauthorized = %v, want %v", got, tt.unauthorized)
			}
		})
	}
}

func TestTransportErrorTimeoutDetection(t *testing.T) {
	tests := []struct {
		name    string
		cause   error
		timeout bool
	}{
		{name: "net timeout", cause: timeoutNetError{}, timeout: true},
		{name: "wrapped net timeout", cause: fmt.Errorf("request: %w", timeoutNetError{}), timeout: true},
		{name: "deadline exceeded", cause: context.DeadlineExceeded, timeout: true},
		{name: "connection refused", cause: stderrors.New("connection refused"), timeout: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTransportError("GetTicket", "https://helpdesk.example.com", tt.cause)
			if !IsTransportError(err) {
				t.Error("expected IsTransportError to be true")
			}
			if got := IsTimeout(err); got != tt.timeout {
				t.Errorf("IsTimeout = %v, want %v", got, tt.timeout)
			}
		})
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset by peer")
	err := NewTransportError("AddNote", "https://helpdesk.example.com", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("api_key", "API key is required")

	if !IsConfigError(err) {
		t.Error("expected IsConfigError to be true")
	}
	if IsValidationError(err) {
		t.Error("config error must not classify as validation error")
	}
	if !strings.Contains(err.Error(), "api_key") {
		t.Errorf("field missing from %q", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "not a valid email address")

	if !IsValidationError(err) {
		t.Error("expected IsValidationError to be true")
	}
	if IsRemoteError(err) {
		t.Error("validation error must not classify as remote error")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("field missing from %q", err.Error())
	}
}

func TestPredicatesOnNil(t *testing.T) {
	for name, pred := range map[string]func(error) bool{
		"IsRemoteError":     IsRemoteError,
		"IsNotFound":        IsNotFound,
		"IsUnauthorized":    IsUnauthorized,
		"IsTransportError":  IsTransportError,
		"IsTimeout":         IsTimeout,
		"IsConfigError":     IsConfigError,
		"IsValidationError": IsValidationError,
	} {
		if pred(nil) {
			t.Errorf("%s(nil) = true, want false", name)
		}
	}
}
