// Package apperror defines the application error type shared by every layer.
// Handlers never pick HTTP status codes: every failure is reported to the client
// as a {"Status":"Error","Error":msg} envelope, so the error type only decides
// the user-facing message and how loudly the failure is logged.
package apperror

import (
	"errors"
	"fmt"
)

// ErrorType is the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents a failure of the relational store
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (bad credentials, missing or invalid token)
	AuthError
	// NotFoundError represents a resource that does not exist or is not owned by the caller
	NotFoundError
	// ValidationError represents an input validation error
	ValidationError
	// BadRequestError represents a malformed request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g. an email that is already registered
	ConflictError
)

var typeNames = map[ErrorType]string{
	UnknownError:    "unknown",
	DatabaseError:   "database",
	ConfigError:     "config",
	AuthError:       "auth",
	NotFoundError:   "not_found",
	ValidationError: "validation",
	BadRequestError: "bad_request",
	InternalError:   "internal",
	MigrationError:  "migration",
	ConflictError:   "conflict",
}

func (t ErrorType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// AppError is the error type returned by services.
// Message is safe to show to clients; Err carries the underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsServerFault reports whether the error was caused by the server rather than
// the caller's input. Server faults are logged at error level.
func (e *AppError) IsServerFault() bool {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, MigrationError, UnknownError:
		return true
	default:
		return false
	}
}

// NewAppError creates a new AppError.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// Envelope status values.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// ErrorResponse is the error envelope written to API clients.
type ErrorResponse struct {
	Status string `json:"Status" example:"Error"`
	Error  string `json:"Error" example:"Todo not found or unauthorized"`
}

// ToResponse converts an AppError to an ErrorResponse.
// Only Message is exposed; the underlying error stays in the logs.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Status: StatusError, Error: e.Message}
}

// FromError finds the first *AppError in err's chain.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

// IsDatabaseError checks if an error is a Database error
func IsDatabaseError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == DatabaseError
}
