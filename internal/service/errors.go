package service

import "fmt"

// CategoryServiceError is a custom error type for unexpected category service failures.
// Expected conditions (store.ErrCategoryNotFound) are returned unwrapped so
// callers can compare them with errors.Is directly.
type CategoryServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CategoryServiceError.
func (e *CategoryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("category service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("category service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CategoryServiceError) Unwrap() error {
	return e.Err
}

// NewCategoryServiceError creates a new CategoryServiceError.
func NewCategoryServiceError(operation, message string, err error) *CategoryServiceError {
	return &CategoryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
