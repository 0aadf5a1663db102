package errors

// Error codes returned by Code and GetErrorCode.
const (
	CodeOK       = "OK"
	CodeNotFound = "NOT_FOUND"
	CodeInternal = "INTERNAL"

	// CodeValidation marks a configuration value that failed validation.
	CodeValidation = "VALIDATION_ERROR"
	// CodeConflict marks a file that already exists and would be overwritten.
	CodeConflict = "CONFLICT"
	// CodeConfigError marks a configuration document that could not be read or decoded.
	CodeConfigError = "CONFIG_ERROR"
	// CodeStorageError marks a failed file system operation.
	CodeStorageError = "STORAGE_ERROR"
	// CodeCryptoError marks a key that could not be generated, encoded or decoded.
	CodeCryptoError = "CRYPTO_ERROR"
	// CodeSerializationError marks a peer table or template that failed to encode or decode.
	CodeSerializationError = "SERIALIZATION_ERROR"
)
