package crud

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the service error taxonomy. Concrete errors below
// unwrap to these so callers can classify with errors.Is.
var (
	ErrNotFound           = errors.New("not_found")
	ErrValidationFailed   = errors.New("validation_failed")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrParentNotSpecified = errors.New("parent_not_specified")
)

// NotFoundError reports that the requested entity, or one of its required
// references, does not exist or is out of the caller's tenant/grant scope.
// The two cases are deliberately indistinguishable.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError is a single field-level constraint violation.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationFailedError carries the full field-error list for an aborted
// mutation.
type ValidationFailedError struct {
	Entity string
	Errors []FieldError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s validation failed (%d errors)", e.Entity, len(e.Errors))
}

func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NegativeRemainingTotalError reports that the sum of split amounts exceeds
// the parent's total amount. It is a validation failure, never a clamp.
type NegativeRemainingTotalError struct {
	Total int64
	Sum   int64
}

func (e *NegativeRemainingTotalError) Error() string {
	return fmt.Sprintf("split amounts %d exceed total %d", e.Sum, e.Total)
}

func (e *NegativeRemainingTotalError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ParentNotSpecifiedError reports a list call on an entity type that
// requires a parent filter, without one.
type ParentNotSpecifiedError struct {
	Entity string
	Param  string
}

func (e *ParentNotSpecifiedError) Error() string {
	return fmt.Sprintf("%s list requires %s", e.Entity, e.Param)
}

func (e *ParentNotSpecifiedError) Is(target error) bool {
	return target == ErrParentNotSpecified
}

// ConflictError is a storage-level constraint violation discovered at
// commit time.
type ConflictError struct {
	Entity string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s write conflict: %v", e.Entity, e.Err)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error { return e.Err }
