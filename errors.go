package formdata

import (
	"errors"
	"fmt"
)

// Common encoder errors
var (
	ErrFinished     = errors.New("multipart writer already finished")
	ErrSinkWrite    = errors.New("sink write failed")
	ErrNotSupported = errors.New("operation not supported")
	ErrValidation   = errors.New("file validation failed")
	ErrInvalidSize  = errors.New("invalid buffer size")
)

// WriteError records a sink failure and the operation and field that caused it
type WriteError struct {
	Op    string
	Field string
	Err   error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v: %v", e.Op, ErrSinkWrite, e.Err)
	}
	return fmt.Sprintf("%s %q: %v: %v", e.Op, e.Field, ErrSinkWrite, e.Err)
}

// Unwrap returns the underlying error
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is makes every WriteError match ErrSinkWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrSinkWrite
}

// SourceError records a failure reading a field value from its source.
type SourceError struct {
	Field string
	Path  string
	Err   error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("read field %q from %s: %v", e.Field, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSinkFailure reports whether an error was caused by the output sink
// refusing bytes
func IsSinkFailure(err error) bool {
	return errors.Is(err, ErrSinkWrite)
}

// IsFinished reports whether an error indicates use of a finished writer
func IsFinished(err error) bool {
	return errors.Is(err, ErrFinished)
}

// IsValidation reports whether an error indicates a rejected file field
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
