package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// AuthenticationError indicates the caller could not be resolved to a known
// principal. Maps to 401.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

// Unauthenticated builds an AuthenticationError.
func Unauthenticated(reason string) *AuthenticationError {
	return &AuthenticationError{Reason: reason}
}

// ValidationError carries one message per failing field. Maps to 400.
// Validation is all-or-nothing: the error lists every field that failed, not
// just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFoundError indicates a required reference does not exist. Maps to 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indicates a uniqueness or state conflict. Maps to 409.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

// Conflict builds a ConflictError.
func Conflict(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

// PersistenceError wraps a database or connectivity failure. Maps to 500 with
// a generic body; the wrapped cause is only ever written to the server log.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence builds a PersistenceError wrapping err.
func Persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// PartialFailureError reports a multi-row update that succeeded for some rows
// and failed for others. There is no cross-row transaction, so the applied
// rows stay applied; callers need to be able to tell this apart from a clean
// failure. Maps to 500.
type PartialFailureError struct {
	Op      string
	Applied int
	Failed  int
	Err     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially applied: %d succeeded, %d failed: %v",
		e.Op, e.Applied, e.Failed, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// PartialFailure builds a PartialFailureError.
func PartialFailure(op string, applied, failed int, err error) *PartialFailureError {
	return &PartialFailureError{Op: op, Applied: applied, Failed: failed, Err: err}
}
