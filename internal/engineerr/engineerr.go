// Package engineerr defines the stable error taxonomy surfaced by the
// symbol engine across its tool boundary.
package engineerr

import (
	"fmt"
	"time"
)

// Code is a stable identifier callers can branch on.
type Code string

const (
	InvalidArgument Code = "InvalidArgument"
	NotFound        Code = "NotFound"
	Ambiguous       Code = "Ambiguous"
	InvalidArchive  Code = "InvalidArchive"
	ManifestMissing Code = "ManifestMissing"
	DecodeError     Code = "DecodeError"
	EmptyDatabase   Code = "EmptyDatabase"
	IoError         Code = "IoError"
	ResourceLimit   Code = "ResourceLimit"
	Internal        Code = "Internal"
)

// EngineError is the single error type returned across the engine's
// public boundary. It carries a stable Code plus freeform Details so the
// dispatcher can map it to the wire {code, message, details} shape
// without a separate translation table.
type EngineError struct {
	Code       Code
	Message    string
	Details    map[string]any
	Underlying error
	Timestamp  time.Time
}

// New creates an EngineError with the given code and message.
func New(code Code, format string, args ...any) *EngineError {
	return &EngineError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
	}
}

// Wrap creates an EngineError that carries an underlying cause.
func Wrap(code Code, err error, format string, args ...any) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithDetail attaches a detail key/value pair and returns the receiver for chaining.
func (e *EngineError) WithDetail(key string, value any) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is allows errors.Is(err, engineerr.Sentinel(engineerr.NotFound)) style
// comparisons: two EngineErrors match when their codes are equal.
func (e *EngineError) Is(target error) bool {
	other, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Sentinel returns a comparable *EngineError carrying only a code, for use
// with errors.Is(err, engineerr.Sentinel(engineerr.NotFound)).
func Sentinel(code Code) *EngineError {
	return &EngineError{Code: code}
}

// NotFoundf builds a NotFound error naming what was looked up.
func NotFoundf(format string, args ...any) *EngineError {
	return New(NotFound, format, args...)
}

// InvalidArgumentf builds an InvalidArgument error.
func InvalidArgumentf(format string, args ...any) *EngineError {
	return New(InvalidArgument, format, args...)
}

// EmptyDatabaseError returns the structured guidance error issued when a
// query is attempted before any package has been loaded.
func EmptyDatabaseError() *EngineError {
	return New(EmptyDatabase, "no packages loaded yet").
		WithDetail("load_tools", []string{"load_packages", "auto_discover"})
}
