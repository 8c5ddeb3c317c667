package policyapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a response the backend answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("policy api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("policy api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// AsAPIError unwraps err into an *APIError if the backend produced it.
// Transport and decoding failures return false.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ServerMessage returns the backend's message for err, or fallback when the
// backend did not send one.
func ServerMessage(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
