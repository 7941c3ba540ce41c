// Package errors defines the coded error taxonomy shared by the analyzer:
// invalid input aborts a run before any file is touched, per-file read
// failures are recoverable, and everything else is internal.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an analyzer error for reporting and exit status mapping.
type Code string

const (
	// CodeInvalidInput marks validation failures: missing directory,
	// empty prefix or suffix, bad pattern. The run aborts before work.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeFileRead marks a single unreadable file. Recoverable: the file
	// contributes zero records and the run continues.
	CodeFileRead Code = "FILE_READ"
	// CodeExportFailed marks a failure writing the output workbook.
	CodeExportFailed Code = "EXPORT_FAILED"
	// CodeInternal marks any other unexpected failure.
	CodeInternal Code = "INTERNAL"
)

// ScanError is an error with a classification code
type ScanError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any
func (e *ScanError) Unwrap() error {
	return e.Err
}

// New creates a ScanError with the given code and message
func New(code Code, message string) *ScanError {
	return &ScanError{Code: code, Message: message}
}

// Wrap creates a ScanError wrapping an underlying cause
func Wrap(code Code, message string, err error) *ScanError {
	return &ScanError{Code: code, Message: message, Err: err}
}

// InvalidInput creates a validation error
func InvalidInput(message string) *ScanError {
	return New(CodeInvalidInput, message)
}

// FileRead creates a per-file read error
func FileRead(path string, err error) *ScanError {
	return Wrap(CodeFileRead, fmt.Sprintf("cannot read file %s", path), err)
}

// ExportFailed creates a workbook export error
func ExportFailed(err error) *ScanError {
	return Wrap(CodeExportFailed, "failed to write report workbook", err)
}

// Internal creates an unexpected-failure error
func Internal(message string, err error) *ScanError {
	return Wrap(CodeInternal, message, err)
}

// CodeOf returns the classification of err, or CodeInternal when err does
// not carry a ScanError.
func CodeOf(err error) Code {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries a ScanError with the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
