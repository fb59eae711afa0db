// Package errors provides standardized error handling for the case collector.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeSubmissionFailed     ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSubmissionInProgress ErrorCode = "SUBMISSION_IN_PROGRESS"

	ErrCodeInvalidPath     ErrorCode = "INVALID_PATH"
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
	ErrCodeInvalidValue    ErrorCode = "INVALID_VALUE"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// SubmissionFailedNotice is the single notice shown for any sink failure.
const SubmissionFailedNotice = "Erro ao enviar o formulário. Tente novamente."

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a metadata entry and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// NewValidationFailedError carries the per-field messages in Metadata["errors"].
func NewValidationFailedError(fieldErrors map[string]string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Form validation failed",
		Details:   fmt.Sprintf("%d invalid field(s)", len(fieldErrors)),
		Retryable: false,
		Metadata:  map[string]interface{}{"errors": fieldErrors},
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError wraps any sink failure. The user only ever sees
// SubmissionFailedNotice; the cause stays in Details for logs.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   SubmissionFailedNotice,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSubmissionInProgressError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInProgress,
		Message:   "A submission is already in progress",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidPathError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPath,
		Message:   "Unknown form field",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewIndexOutOfRangeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexOutOfRange,
		Message:   "Monthly record index out of range",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidValueError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidValue,
		Message:   "Invalid value for field",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Malformed request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandardError finds a StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HTTPStatus maps an error code to the status returned by the session API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeSubmissionFailed:
		return http.StatusBadGateway
	case ErrCodeSubmissionInProgress:
		return http.StatusConflict
	case ErrCodeInvalidPath, ErrCodeInvalidValue, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeIndexOutOfRange:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidPath, ErrCodeIndexOutOfRange, ErrCodeInvalidValue, ErrCodeInvalidRequest:
		return "client"
	case ErrCodeSubmissionFailed:
		return "remote"
	case ErrCodeSubmissionInProgress:
		return "conflict"
	default:
		return "internal"
	}
}
