package api

import "fmt"

// Error is a non-2xx response from the backend. Message carries the
// backend-reported message when the error payload was decodable, otherwise a
// generic description.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorPayload is the shape the backend uses for error bodies. Some
// endpoints use "message", others "error".
type errorPayload struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (p errorPayload) text() string {
	if p.Message != "" {
		return p.Message
	}
	return p.Err
}
