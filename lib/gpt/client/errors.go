package gptclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ErrRateLimit is returned by a backend when the provider throttled the request.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("provider rate limit exceeded: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrConnection is returned when the provider could not be reached.
type ErrConnection struct {
	Err error
}

func (e *ErrConnection) Error() string {
	return fmt.Sprintf("provider connection failed: %v", e.Err)
}

func (e *ErrConnection) Unwrap() error { return e.Err }

// ErrProvider is an error reported by the provider API itself.
type ErrProvider struct {
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *ErrProvider) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ErrProvider) Unwrap() error { return e.Err }

// NewProviderError marks server side failures as retryable and client side ones as fatal.
func NewProviderError(statusCode int, err error) *ErrProvider {
	return &ErrProvider{
		StatusCode: statusCode,
		Retryable:  statusCode >= http.StatusInternalServerError,
		Err:        err,
	}
}

// ErrAttempt carries the attempt context of an error that stopped the retry loop.
type ErrAttempt struct {
	Attempt     int
	MaxAttempts int
	Err         error
}

func (e *ErrAttempt) Error() string {
	return fmt.Sprintf("attempt %d/%d: %v", e.Attempt, e.MaxAttempts, e.Err)
}

func (e *ErrAttempt) Unwrap() error { return e.Err }

// ErrExhausted is returned after every attempt failed with a transient error.
type ErrExhausted struct {
	Attempts int
	Elapsed  time.Duration
	Err      error
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("provider call failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ErrExhausted) Unwrap() error { return e.Err }

var errNoMockResponses = errors.New("mock provider has no queued responses")
