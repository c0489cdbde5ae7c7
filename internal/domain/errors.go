package domain

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrDomainNotFound        = errors.New("domain not found")
	ErrPrimaryDomainNotFound = errors.New("primary domain not found")
	ErrNoAPIKey              = errors.New("no API key found for the domain")
)

// ProviderError is returned when Mailgun answers with a non-success status.
// Body holds the raw response so it can be relayed to the caller.
type ProviderError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("mailgun returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request to Mailgun could not be
// completed at all (DNS, connection reset, timeout, unreadable body).
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
