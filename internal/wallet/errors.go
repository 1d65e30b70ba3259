package wallet

import (
	"errors"
	"fmt"
)

// ValidationError is a missing or invalid form input. Its message is shown
// to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validation failures.
var (
	ErrIncompleteRegistration = &ValidationError{Field: "registration", Message: "Please fill all fields"}
	ErrInvalidCategory        = &ValidationError{Field: "category", Message: "Please select a valid category."}
	ErrMissingPhoto           = &ValidationError{Field: "photo", Message: "Please capture or upload a photo."}
)

// ErrNoIdentity means the session has no registered identity.
var ErrNoIdentity = errors.New("no identity in session")

// StorageError is a failure writing media or item records.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
