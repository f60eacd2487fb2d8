package domain

import "fmt"

// NotFoundError indicates the referenced entity does not exist, or that the
// caller is not allowed to know whether it exists.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError creates a NotFoundError for the given resource and identifier.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError indicates a business-rule violation in the request itself.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidStateError indicates a state transition that the lifecycle does not allow.
type InvalidStateError struct {
	Current string
	Target  string
}

// NewInvalidStateError creates an InvalidStateError for the attempted transition.
func NewInvalidStateError(current, target string) *InvalidStateError {
	return &InvalidStateError{Current: current, Target: target}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.Current, e.Target)
}

// ForbiddenError indicates the caller is known but not allowed to perform the operation.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ConflictError indicates the operation lost against a concurrent modification
// or violates a uniqueness constraint.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}
