package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"workgen/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"

	CodeNoData           = "NO_DATA"
	CodeSchema           = "SCHEMA"
	CodeDuplicateProject = "DUPLICATE_PROJECT"
	CodeInsufficientPool = "INSUFFICIENT_POOL"
	CodeEmptyColumn      = "EMPTY_COLUMN"
	CodeParseError       = "PARSE_ERROR"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

var domainCodes = []struct {
	target error
	code   string
}{
	{core.ErrSessionNotFound, CodeSessionNotFound},
	{core.ErrNoData, CodeNoData},
	{core.ErrSchema, CodeSchema},
	{core.ErrDuplicateProject, CodeDuplicateProject},
	{core.ErrInsufficientPool, CodeInsufficientPool},
	{core.ErrEmptyColumn, CodeEmptyColumn},
	{core.ErrParse, CodeParseError},
	{core.ErrInvalidInput, CodeInvalidInput},
}

// FromDomain classifies an error by the domain sentinel it wraps.
// Unknown errors become INTERNAL_ERROR.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	for _, dc := range domainCodes {
		if stderrors.Is(err, dc.target) {
			return &AppError{Code: dc.code, Message: err.Error(), Cause: err}
		}
	}
	return &AppError{Code: CodeInternalError, Message: err.Error(), Cause: err}
}

// HTTPStatus maps an error code to a response status
func HTTPStatus(code string) int {
	switch code {
	case CodeSessionNotFound:
		return http.StatusNotFound
	case CodeNoData, CodeDuplicateProject, CodeInsufficientPool:
		return http.StatusConflict
	case CodeSchema, CodeEmptyColumn, CodeParseError:
		return http.StatusUnprocessableEntity
	case CodeInvalidInput, CodeConfigInvalid:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
