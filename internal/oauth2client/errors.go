package oauth2client

import "fmt"

// Error wraps a failure to communicate with the provider, keeping the
// underlying cause reachable through Unwrap.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusError is returned when the provider answers outside the 2xx range.
// The body is kept verbatim for diagnostics.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
