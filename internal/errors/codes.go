package errors

import (
	"fmt"
)

// ErrorCode represents a specific failure class for gateway operations.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates a missing or invalid credential/setting.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeTranscription indicates a speech-to-text provider failure.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION"
	// ErrCodeEmbedding indicates an embedding provider failure.
	ErrCodeEmbedding ErrorCode = "EMBEDDING"
	// ErrCodeStore indicates a vector store failure.
	ErrCodeStore ErrorCode = "STORE"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error represents a structured error for gateway operations. Every gateway
// failure propagates to the top-level interaction unrecovered; the code lets
// the UI tell the user which collaborator failed.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Configuration creates a configuration error.
func Configuration(msg string) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: msg}
}

// Transcription creates a transcription provider error.
func Transcription(msg string, cause error) *Error {
	return &Error{Code: ErrCodeTranscription, Message: msg, Cause: cause}
}

// Embedding creates an embedding provider error.
func Embedding(msg string, cause error) *Error {
	return &Error{Code: ErrCodeEmbedding, Message: msg, Cause: cause}
}

// Store creates a vector store error.
func Store(msg string, cause error) *Error {
	return &Error{Code: ErrCodeStore, Message: msg, Cause: cause}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
