package models

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound     = errors.New("models: task not found")
	ErrCustomerNotFound = errors.New("models: customer not found")
	ErrForbidden        = errors.New("models: operation forbidden for this user")
	ErrSlugConflict     = errors.New("models: slug already taken")
)

// ValidationError reports malformed or semantically invalid input. Field is
// optional detail for the client.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return "validation: " + e.Message
}

// NewValidationError builds a field-level validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DatabaseError wraps any store-level failure. Details are logged server-side;
// callers only ever see the operation name.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string { return "database: " + e.Op + ": " + e.Err.Error() }
func (e *DatabaseError) Unwrap() error { return e.Err }

// WrapDBError attaches the failing operation to a store error.
func WrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDatabase reports whether err is (or wraps) a store failure.
func IsDatabase(err error) bool {
	var de *DatabaseError
	return errors.As(err, &de)
}
