package errors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies an AppError.
type Kind int

const (
	// KindNotFound means the requested resource does not exist
	KindNotFound Kind = iota + 1
	// KindValidation means the request carried an invalid value
	KindValidation
	// KindInternal is reserved for unexpected failures
	KindInternal
)

// notFoundMessage is the message every NotFound error carries
const notFoundMessage = "Resource not found"

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_error"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Common application errors
var (
	ErrNotFound = NotFound()
	ErrInternal = Internal("Internal server error", nil)
)

// AppError is the single error type handlers translate to a transport response.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

// NotFound creates a not found error
func NotFound() *AppError {
	return &AppError{Kind: KindNotFound, Message: notFoundMessage}
}

// Validation creates a validation error with a human-readable message
func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// Internal creates an internal error wrapping err
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// HTTPStatus returns the HTTP status code for this error
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GRPCStatus returns the gRPC status for this error
func (e *AppError) GRPCStatus() *status.Status {
	switch e.Kind {
	case KindNotFound:
		return status.New(codes.NotFound, e.Message)
	case KindValidation:
		return status.New(codes.InvalidArgument, e.Message)
	default:
		return status.New(codes.Internal, e.Message)
	}
}

// As extracts an AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFound AppError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a Validation AppError
func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindValidation
}
