package aps

import "fmt"

// APIError is a non-2xx response from the remote APS API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("aps: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
