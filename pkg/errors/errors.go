package errors

import (
	"errors"
	"fmt"
)

// Sentinels matched by the Is* helpers in addition to the typed errors.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Error is implemented by every typed error in this package.
type Error interface {
	error
	Code() string
	Message() string
	Unwrap() error
}

// BaseError carries the code, message and cause shared by the typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string { return e.code }

// Message returns the message without the cause.
func (e *BaseError) Message() string { return e.message }

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error { return e.cause }

// ValidationError is a configuration value that failed validation.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{code: CodeValidation, message: message},
		Field:     field,
		Value:     value,
	}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.message)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

// NotFoundError is a missing file, key or peer.
type NotFoundError struct {
	*BaseError
	Resource string
	ID       string
}

// NewNotFoundError creates a not found error; id may be empty.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		BaseError: &BaseError{code: CodeNotFound, message: resource + " not found"},
		Resource:  resource,
		ID:        id,
	}
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
	}
	return e.message
}

// ConflictError is a file that already exists and would be overwritten.
type ConflictError struct {
	*BaseError
	Resource string
	Path     string
}

// NewConflictError creates a conflict error for the file at path.
func NewConflictError(resource, path string) *ConflictError {
	message := resource + " already exists"
	if path != "" {
		message = fmt.Sprintf("%s '%s' already exists", resource, path)
	}
	return &ConflictError{
		BaseError: &BaseError{code: CodeConflict, message: message},
		Resource:  resource,
		Path:      path,
	}
}

// ConfigError is a configuration document that could not be read or decoded.
type ConfigError struct {
	*BaseError
	Path   string
	Format string
}

// NewConfigError creates a config error for the document at path.
func NewConfigError(path, format string, cause error) *ConfigError {
	message := "invalid config"
	if path != "" {
		message = "invalid config " + path
	}
	return &ConfigError{
		BaseError: &BaseError{code: CodeConfigError, message: message, cause: cause},
		Path:      path,
		Format:    format,
	}
}

// InternalError is a failure with no more specific code.
type InternalError struct {
	*BaseError
}

// Wrap adds context to err. A typed error keeps its code; anything else
// becomes an InternalError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		return &BaseError{code: e.Code(), message: message, cause: err}
	}
	return &InternalError{&BaseError{code: CodeInternal, message: message, cause: err}}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapCode wraps err with a message and an explicit code.
func WrapCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &BaseError{code: code, message: message, cause: err}
}
