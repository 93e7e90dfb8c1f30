package client

import "fmt"

// TransportError wraps a network or timeout failure reaching the API.
// There is no retry; it propagates to the caller as-is.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "groq request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-success HTTP status from the API. Detail holds the parsed
// JSON error body when the body is valid JSON, otherwise the raw text (or the
// status line when the body is empty).
type APIError struct {
	StatusCode int
	Detail     any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Groq API error: %v", e.Detail)
}

// DecodeError is a success status whose body is not valid JSON.
type DecodeError struct {
	Reason error
	Raw    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse Groq response as JSON: %v; raw: %s", e.Reason, e.Raw)
}

func (e *DecodeError) Unwrap() error { return e.Reason }
