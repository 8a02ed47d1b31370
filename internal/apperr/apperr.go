// Package apperr defines the error categories shared across the service so
// handlers can map failures to responses without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel categories. Wrap them with fmt.Errorf("...: %w", ...) and test
// with errors.Is.
var (
	// ErrValidation marks input rejected before any work was done.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrParse marks data that could not be reduced to a usable value.
	ErrParse = errors.New("parse failed")

	// ErrUnreadableInput marks low-confidence scanner output. The caller can
	// recover by resubmitting a better image, so it is distinct from ErrParse.
	ErrUnreadableInput = errors.New("input unreadable")

	// ErrTransaction marks a multi-row write that was rolled back.
	ErrTransaction = errors.New("transaction failed")
)

// Validation wraps ErrValidation with a reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the missing entity and its key.
func NotFound(entity, key string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, key)
}

// Parse wraps ErrParse with a reason.
func Parse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
