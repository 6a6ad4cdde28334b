package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "Validation error"
	}
	return e.Message
}

// ConfigurationError reports a required credential that is not configured.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// UpstreamError reports a failed or unusable call to an external provider.
// Err carries the provider failure for logs only.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// errEmptyResponse marks a model reply that carried no text.
var errEmptyResponse = errors.New("model returned no text")

// errThrottled marks a call abandoned while waiting for a rate slot.
var errThrottled = errors.New("timed out waiting for model capacity")

// Diagnostic returns a short detail that is safe to show to visitors.
func (e *UpstreamError) Diagnostic() string {
	var coded interface{ HTTPCode() int }
	var gerr *googleapi.Error

	switch {
	case e.Err == nil:
		return "upstream request failed"
	case errors.Is(e.Err, errEmptyResponse):
		return "the model returned an empty response"
	case errors.Is(e.Err, errThrottled):
		return "the assistant is busy"
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "upstream request timed out"
	case errors.Is(e.Err, context.Canceled):
		return "request was cancelled"
	case errors.As(e.Err, &gerr):
		return statusDiagnostic(gerr.Code)
	case errors.As(e.Err, &coded) && coded.HTTPCode() > 0:
		return statusDiagnostic(coded.HTTPCode())
	default:
		return "upstream request failed"
	}
}

func statusDiagnostic(code int) string {
	return fmt.Sprintf("upstream returned %d %s", code, http.StatusText(code))
}
