package scraper

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable signals a 503 from the source site: a transient
// site-wide condition rather than a bad request.
var ErrServiceUnavailable = errors.New("the source site is temporarily unavailable (503)")

// ValidationError reports an input URL outside the supported site.
type ValidationError struct {
	URL     string
	BaseURL string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("url %q must start with %s", e.URL, e.BaseURL)
}

// HTTPError reports a non-200, non-503 response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("received a %d error code requesting %s", e.StatusCode, e.URL)
}

// MissingRequiredFieldError reports a field without which the downstream
// analysis would divide by zero.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("could not find %s", e.Field)
}

// ParseError wraps a malformed or unexpected structure in the auxiliary
// payload.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse out %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
