package api

import "fmt"

// HTTPError represents a non-2xx response from the report API. Details holds
// the parsed JSON error payload when the body is valid JSON, the raw body
// text when it is not, or nil when the body is empty.
type HTTPError struct {
	Status     int
	StatusText string
	Details    interface{}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.StatusText)
}

// IsUnauthorized reports whether the error is a 401 response.
func (e *HTTPError) IsUnauthorized() bool {
	return e.Status == 401
}
