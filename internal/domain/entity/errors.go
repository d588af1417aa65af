package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed marks a source registry or domain value that failed validation.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError names the offending field of a source or URL.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets callers test any field error against ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
