package mandala

import (
	"errors"
	"fmt"

	"github.com/gurza/mandala/lib/mandala/conflict"
)

// ErrNotFound is returned when the requested chart or goal does not exist.
var ErrNotFound = errors.New("not found")

// ResponseError represents an HTTP error response from the server.
type ResponseError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("mandala: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("mandala: HTTP %d", e.StatusCode)
}

// ConflictError is returned by UpdateGoal when the goal changed on the
// server since the version the caller last read. Latest is the current
// server row and Fields the ordered field-level diff between the rejected
// update and that row.
type ConflictError struct {
	ServerVersion int64            `json:"server_version"`
	Latest        Goal             `json:"latest"`
	Fields        []conflict.Field `json:"fields"`
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("goal %s changed concurrently, server version %d", e.Latest.ID, e.ServerVersion)
}

// Conflict marks the error as a version conflict for callers that detect
// conflicts structurally without depending on the concrete type.
func (e *ConflictError) Conflict() bool { return true }
