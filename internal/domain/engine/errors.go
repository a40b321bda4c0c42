package engine

import (
	"errors"
	"fmt"
)

// Sentinel causes for registry validation failures.
var (
	ErrDuplicateStep     = errors.New("step with this ID already exists")
	ErrMissingDependency = errors.New("step depends on nonexistent step")
	ErrCyclicDependency  = errors.New("cyclic dependency detected")
)

// InvalidRegistryError reports a registry that violates the declared-step
// invariants (unique IDs, resolvable dependencies, acyclic graph). It is
// returned before any probe runs.
type InvalidRegistryError struct {
	StepID string
	Reason error
}

// Error returns the formatted error message.
func (e *InvalidRegistryError) Error() string {
	if e.StepID != "" {
		return fmt.Sprintf("invalid registry: step %q: %s", e.StepID, e.Reason)
	}
	return fmt.Sprintf("invalid registry: %s", e.Reason)
}

// Unwrap returns the underlying cause.
func (e *InvalidRegistryError) Unwrap() error {
	return e.Reason
}

// ProbeError reports that a step's probe could not read the environment.
// It aborts only the one step; the run continues.
type ProbeError struct {
	StepID StepID
	Err    error
}

// Error returns the formatted error message.
func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed for step %q: %s", e.StepID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// ConflictError reports that a step found existing configuration that
// differs from the desired state and refused to overwrite it. The outcome
// is recorded as a conflict rather than a failure, and the shared resource
// is left untouched.
type ConflictError struct {
	Resource string
	Detail   string
}

// Error returns the formatted error message.
func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Detail)
	}
	return fmt.Sprintf("conflict on %s", e.Resource)
}

// NewConflictError creates a ConflictError for a shared resource.
func NewConflictError(resource, detail string) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}
