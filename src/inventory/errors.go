package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks lookups that missed. A miss is a normal outcome
// callers are expected to handle, not a fault.
var ErrNotFound = errors.New("vehicle not found")

// ValidationError describes a rejected input field. Validation happens
// before any scan; a spec that fails validation is never partially
// applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError carries the complete list of identifiers a comparison
// could not resolve, so callers can correct all of them in one retry.
type NotFoundError struct {
	IDs []int
}

func (e *NotFoundError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("vehicles not found: %s", strings.Join(ids, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
