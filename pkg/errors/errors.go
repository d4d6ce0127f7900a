// Package errors provides structured error types for the weeks application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the interactive shell
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_UNAVAILABLE: Platform capabilities that are missing right now
//   - NETWORK_*: Network-related errors
//   - INTERNAL_*: Unexpected internal errors
//
// None of these are fatal to the process. Validation errors are corrected by
// the user, the rest are absorbed with a safe default.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDate, "birth date %s is not in the past", date)
//	if errors.Is(err, errors.ErrCodeInvalidDate) {
//	    // Show the validation message, keep the visualize action disabled
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeClipboardUnavailable, origErr, "copy share link")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDate     Code = "INVALID_DATE"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Recoverable conditions
	ErrCodeUndecodableToken       Code = "UNDECODABLE_SHARE_TOKEN"
	ErrCodeMeasurementUnavailable Code = "MEASUREMENT_UNAVAILABLE"
	ErrCodeClipboardUnavailable   Code = "CLIPBOARD_UNAVAILABLE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error carries a machine-readable Code, a message for the user and an
// optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in the chain of err has code, so a
// validation failure stays detectable after a caller wraps it with a
// broader code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain of err, or ""
// when there is none.
func GetCode(err error) Code {
	if e := outermost(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for foreign errors. It returns "" for nil.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := outermost(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func outermost(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Recoverable reports whether err belongs to the class of conditions that the
// application absorbs silently with a safe default instead of reporting them.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeUndecodableToken, ErrCodeMeasurementUnavailable, ErrCodeClipboardUnavailable:
		return true
	}
	return false
}
