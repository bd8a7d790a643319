package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks a 401 from the server. It is the only condition that
// forces local session teardown; every 401 *APIError matches it via Unwrap.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx HTTP response from the dealer API. Message carries
// the server-supplied message when the body had one, else a generic fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dealer api: %s (status %d)", e.Message, e.Status)
}

// Unwrap lets a 401 response satisfy errors.Is(err, ErrUnauthorized) while
// still carrying the server's message. A login rejection needs the message
// ("Invalid credentials"); an expired session needs the sentinel.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// UserMessage converts any error coming out of the gateway into the string
// shown to the dealer: the server's own message for HTTP errors, a generic
// network message for everything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthorized) {
		return "Your session has expired. Please log in again."
	}
	return "Network error. Please try again."
}
