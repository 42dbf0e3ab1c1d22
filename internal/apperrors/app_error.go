package apperrors

import "fmt"

// AppError carries a stable machine-readable code alongside a human-readable
// message and the wrapped cause. Repositories use it to wrap storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound in errors.Is checks.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewUnavailableError wraps a connectivity-class storage failure so it matches
// ErrUnavailable in errors.Is checks. Callers may retry with backoff.
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{Code: 503, Message: message, Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
}
