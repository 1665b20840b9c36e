package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
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
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
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

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
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
	CodeMissingSource = "MISSING_SOURCE"
	CodeSchemaInvalid = "SCHEMA_INVALID"
	CodeEmptyData     = "EMPTY_DATA"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabaseError,
		Message: message,
		Cause:   cause,
	}
}

func InvalidInput(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Cause:   cause,
	}
}

// MissingSource reports that no table could be loaded.
func MissingSource(cause error) *AppError {
	return &AppError{
		Code:    CodeMissingSource,
		Message: "no customer data could be loaded",
		Cause:   cause,
	}
}

// EmptyData reports a schema-valid table without rows. It is a notice, not a
// failure: computations still run and yield zero metrics.
func EmptyData(cause error) *AppError {
	return &AppError{
		Code:    CodeEmptyData,
		Message: "dataset has no customer rows",
		Cause:   cause,
	}
}

// SchemaError is a loaded table lacking required columns.
type SchemaError struct {
	*AppError
	Missing []string
}

func (e *SchemaError) Unwrap() error {
	return e.AppError
}

// SchemaInvalid reports the required columns absent from a loaded table.
func SchemaInvalid(missing []string, cause error) *SchemaError {
	return &SchemaError{
		AppError: &AppError{
			Code:    CodeSchemaInvalid,
			Message: "dataset is missing required fields: " + strings.Join(missing, ", "),
			Cause:   cause,
		},
		Missing: missing,
	}
}

// MissingFields returns the missing-column list carried by err, if any.
func MissingFields(err error) []string {
	var schemaErr *SchemaError
	if stderrors.As(err, &schemaErr) {
		return schemaErr.Missing
	}
	return nil
}
