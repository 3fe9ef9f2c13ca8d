package share

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError represents a 429 response from the webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("webhook rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a 4xx response from the webhook service.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx response from the webhook service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// countsAsBreakerFailure reports whether err should trip the circuit
// breaker. Client errors mean a bad payload, not a broken endpoint.
func countsAsBreakerFailure(err error) bool {
	var clientErr *ClientError
	return !errors.As(err, &clientErr)
}
