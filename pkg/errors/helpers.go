package errors

import (
	"errors"
	"io/fs"
)

// IsNotFound reports whether err means a file, key or peer is missing.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	return GetErrorCode(err) == CodeNotFound
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsConflict reports whether err means an existing file would be overwritten.
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr) || errors.Is(err, ErrConflict)
}

// IsConfig reports whether err means a config document could not be read or decoded.
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// GetErrorCode extracts the error code from err.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, fs.ErrExist):
		return CodeConflict
	default:
		return CodeInternal
	}
}
