package errors

import (
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	ErrorTypeInvalidParameter ErrorType = "INVALID_PARAMETER"
	ErrorTypeInvalidFrameRate ErrorType = "INVALID_FRAME_RATE"
	ErrorTypeMissingMetadata  ErrorType = "MISSING_METADATA"
	ErrorTypeInternal         ErrorType = "INTERNAL_ERROR"
)

// EngineError represents an engine error with additional context.
type EngineError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error.
func (e *EngineError) WithDetails(details map[string]interface{}) *EngineError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error.
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new EngineError.
func New(errType ErrorType, message string) *EngineError {
	return &EngineError{
		Type:    errType,
		Message: message,
	}
}

// Wrap wraps an existing error.
func Wrap(err error, errType ErrorType, message string) *EngineError {
	return &EngineError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors.

// NewInvalidParameterError creates an invalid parameter error for the named
// parameter. Parameters are rejected at construction time, before any frame
// is processed.
func NewInvalidParameterError(param, message string) *EngineError {
	return New(ErrorTypeInvalidParameter, fmt.Sprintf("%s: %s", param, message)).
		WithDetail("parameter", param)
}

// NewInvalidFrameRateError creates an invalid frame rate error. The first
// pair is the rate the source carries, the second the rate required.
func NewInvalidFrameRateError(gotNum, gotDen, wantNum, wantDen int) *EngineError {
	return New(ErrorTypeInvalidFrameRate,
		fmt.Sprintf("source is %d/%d fps, requires exactly %d/%d", gotNum, gotDen, wantNum, wantDen)).
		WithDetail("got", fmt.Sprintf("%d/%d", gotNum, gotDen)).
		WithDetail("want", fmt.Sprintf("%d/%d", wantNum, wantDen))
}

// NewMissingMetadataError creates a missing metadata error for a frame index.
// Missing metadata is fatal to the derived stream: a single absent decision
// desynchronizes every later frame.
func NewMissingMetadataError(frame int) *EngineError {
	return New(ErrorTypeMissingMetadata,
		fmt.Sprintf("no classifier metadata for frame %d", frame)).
		WithDetail("frame", frame)
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *EngineError {
	return New(ErrorTypeInternal, message)
}

// WrapInternalError wraps an error as an internal error.
func WrapInternalError(err error, message string) *EngineError {
	return Wrap(err, ErrorTypeInternal, message)
}

// IsEngineError checks if an error is an EngineError.
func IsEngineError(err error) bool {
	_, ok := err.(*EngineError)
	return ok
}

// GetEngineError extracts EngineError from an error.
func GetEngineError(err error) (*EngineError, bool) {
	engErr, ok := err.(*EngineError)
	return engErr, ok
}

// IsType reports whether err is an EngineError of the given type.
func IsType(err error, errType ErrorType) bool {
	engErr, ok := GetEngineError(err)
	return ok && engErr.Type == errType
}
