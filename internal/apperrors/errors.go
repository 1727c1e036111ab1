package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrVerification indicates that a journal failed its closing-time verification.
var ErrVerification = errors.New("verification failed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status-like code alongside the wrapped cause.
// Repositories use it to report infrastructure failures.
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

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// FieldErrors collects violation messages keyed by field name.
// Validation and verification both gather every violation before reporting.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Merge copies all messages from other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		f[field] = append(f[field], messages...)
	}
}

// IsEmpty reports whether no violations were collected.
func (f FieldErrors) IsEmpty() bool {
	return len(f) == 0
}

func (f FieldErrors) String() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(f))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(f[field], "; ")))
	}
	return strings.Join(parts, "; ")
}

// ValidationError reports one or more named-field violations.
// It wraps ErrValidation so callers can match with errors.Is.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Fields.String())
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError wraps collected field violations.
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// VerificationError aggregates balance/grant/inventory discrepancies found at
// closing time. It wraps ErrVerification.
type VerificationError struct {
	Fields FieldErrors
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("journal verification failed: %s", e.Fields.String())
}

func (e *VerificationError) Unwrap() error {
	return ErrVerification
}

// NewVerificationError wraps collected verification violations.
func NewVerificationError(fields FieldErrors) *VerificationError {
	return &VerificationError{Fields: fields}
}
