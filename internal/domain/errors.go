package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks a record missing one of the required identity
// fields. Callers skip the record and keep going.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record missing required field %q", e.Field)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrBatchNotFound is returned when a publish confirmation references an
// unknown export batch.
var ErrBatchNotFound = errors.New("export batch not found")
