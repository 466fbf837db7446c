package services

import (
	"errors"
	"fmt"
)

// ErrDuplicateEmail reports that a record with the submitted email already
// exists in the category's collection.
var ErrDuplicateEmail = errors.New("email already exists")

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// MissingFileError reports a required file slot with no uploaded file.
type MissingFileError struct {
	Slot string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s is required", e.Slot)
}

// StorageError wraps a failure from the record store or the blob storage
// backend. Op is the operation that failed: lookup, upload, or insert.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
