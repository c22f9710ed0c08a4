package student

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("student not found")
	ErrDuplicate       = errors.New("registration number already exists")
	ErrValidation      = errors.New("invalid input")
	ErrDeleteCancelled = errors.New("deletion cancelled")
)

// ValidationError describes a single rejected field value
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s '%s' %s", e.Field, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) work
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
