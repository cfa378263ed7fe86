package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrDuplicate
	ErrProtectedRow
	ErrWrite
	ErrUnauthorized
	ErrInternal
)

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func Duplicate(message string) *AppError {
	return &AppError{
		Code:    ErrDuplicate,
		Message: message,
	}
}

// ProtectedRow marks a rejected mutation of the header row of a tab.
func ProtectedRow(tab string) *AppError {
	return &AppError{
		Code:    ErrProtectedRow,
		Message: fmt.Sprintf("refusing to modify header row of tab %q", tab),
	}
}

// Write wraps a failed call to the backing row store. Writes are never
// retried automatically; callers surface the failure as-is.
func Write(op string, err error) *AppError {
	return &AppError{
		Code:    ErrWrite,
		Message: fmt.Sprintf("row store %s failed", op),
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf returns the AppError code carried by err, or ErrInternal when err
// is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

func IsNotFound(err error) bool     { return CodeOf(err) == ErrNotFound }
func IsDuplicate(err error) bool    { return CodeOf(err) == ErrDuplicate }
func IsValidation(err error) bool   { return CodeOf(err) == ErrValidation }
func IsProtectedRow(err error) bool { return CodeOf(err) == ErrProtectedRow }
func IsWrite(err error) bool        { return CodeOf(err) == ErrWrite }
