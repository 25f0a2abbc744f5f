package api

import (
	"errors"
	"fmt"
)

// networkErrorMessage is deliberately generic.  The underlying transport error is logged, never shown.
const networkErrorMessage = "Network error: unable to reach the server. Please check your connection."

// Error is returned when the server answered with a non-2xx status
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NetworkError is returned when a request never produced a response (DNS, refused connection, offline...)
type NetworkError struct{}

func (e *NetworkError) Error() string {
	return networkErrorMessage
}

// statusMessage is the message used when an error response carries no usable detail
func statusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// UserMessage returns the message to show the user for err.  API and network errors carry their own message, anything
// else is replaced by fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	return fallback
}
