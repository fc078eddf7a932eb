package apperrors

import "errors"

// Sentinel errors forming the failure taxonomy of the core. Repository and
// service code never lets a raw driver error cross a package boundary; it is
// wrapped into (or replaced by) one of these.
var (
	// ErrInvalidInput means caller-supplied data failed a precondition
	// before reaching storage.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict means a uniqueness invariant would be violated.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable means the storage backend could not be reached or
	// timed out. Retryable by the caller.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInvalidCredentials is the single authentication failure. It is
	// intentionally the same for an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInternal covers anything the storage driver reports that the
	// taxonomy does not classify.
	ErrInternal = errors.New("internal error")
)

// Session token errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// CustomError carries a taxonomy sentinel together with a human-readable
// message and optional context details.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the taxonomy sentinel to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewInvalidInputError creates an InvalidInput error with a message.
func NewInvalidInputError(message string) error {
	return &CustomError{Err: ErrInvalidInput, Message: message}
}

// NewNotFoundError creates a NotFound error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a Conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewUnavailableError creates an Unavailable error with a message.
func NewUnavailableError(message string) error {
	return &CustomError{Err: ErrUnavailable, Message: message}
}
