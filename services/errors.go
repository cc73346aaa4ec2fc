package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced order, item, user or pricing row does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a shop pricing row that is already configured
	ErrAlreadyExists = errors.New("already exists")

	// ErrForbidden is returned when the Authorizer denies an operation
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports malformed input such as non-positive quantities or unknown enum values
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failed database operation. It is surfaced, never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps err unless it already carries one of the domain errors
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var se *StorageError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrForbidden) ||
		errors.As(err, &ve) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// NotFoundError names the missing resource. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}
