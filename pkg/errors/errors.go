package custom_error

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidEmail          = errors.New("please enter a valid email address")
	ErrUnknownAccount        = errors.New("no account found with this email")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrDuplicateAccount      = errors.New("account with this email already exists")
	ErrNotFound              = errors.New("record not found")
)

// OperationFailedError wraps any failure of the persistence layer.
type OperationFailedError struct {
	Op  string
	Err error
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationFailedError) Unwrap() error {
	return e.Err
}

func OperationFailed(op string, err error) error {
	return &OperationFailedError{Op: op, Err: err}
}

// ValidationError lists the request fields rejected at the boundary.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, rule := range e.Fields {
		parts = append(parts, field+": "+rule)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}
