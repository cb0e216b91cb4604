package backend

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider responses.
var (
	ErrMalformedResponse = errors.New("malformed response body")
	ErrEmptyResponse     = errors.New("no content in response")
)

// APIError represents a non-success HTTP status from a provider.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint string, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Body:       string(body),
	}
}
