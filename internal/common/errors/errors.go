// Package errors provides standardized error handling for the eligibility and
// case management core.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Assessment pipeline errors
const (
	ErrCodeUnsupportedLanguageTest ErrorCode = "UNSUPPORTED_LANGUAGE_TEST"
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"
	ErrCodeCatalogNotFound         ErrorCode = "CATALOG_NOT_FOUND"
)

// Case lifecycle errors
const (
	ErrCodeInvalidTransition      ErrorCode = "INVALID_TRANSITION"
	ErrCodeTerminalStateViolation ErrorCode = "TERMINAL_STATE_VIOLATION"
	ErrCodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
	ErrCodeCaseNotFound           ErrorCode = "CASE_NOT_FOUND"
	ErrCodeInvalidMutation        ErrorCode = "INVALID_MUTATION"
)

// Infrastructure errors
const (
	ErrCodeDatabaseWriteFailed ErrorCode = "DATABASE_WRITE_FAILED"
	ErrCodeDatabaseReadFailed  ErrorCode = "DATABASE_READ_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error chain; empty string when the
// chain carries no StandardError.
func CodeOf(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return ""
}

// HasCode reports whether the error chain carries a StandardError with the
// given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewUnsupportedLanguageTestError flags an unrecognized language test type.
// Not retryable; the caller must correct the submitted data.
func NewUnsupportedLanguageTestError(testType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedLanguageTest,
		Message:   "Unrecognized language test type",
		Details:   fmt.Sprintf("testType: %s", testType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileValidationFailedError creates a non-retryable intake validation error.
func NewProfileValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileValidationFailed,
		Message:   "Raw profile failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogNotFoundError indicates a missing rule catalog entry; this is a
// configuration or versioning gap, never retried.
func NewCatalogNotFoundError(program, country string, versionDate time.Time) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogNotFound,
		Message:   "No rule catalog entry effective for the requested date",
		Details:   fmt.Sprintf("program: %s, country: %s, versionDate: %s", program, country, versionDate.Format("2006-01-02")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError creates a non-retryable stage policy error.
func NewInvalidTransitionError(from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   "Target stage is not reachable from the current stage",
		Details:   fmt.Sprintf("from: %s, to: %s", from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTerminalStateViolationError rejects any transition on a closed case.
func NewTerminalStateViolationError(stage string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTerminalStateViolation,
		Message:   "Case is in a terminal stage and cannot transition",
		Details:   fmt.Sprintf("stage: %s", stage),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConcurrentModificationError signals an optimistic version mismatch. The
// caller should re-read the case and retry with the updated version.
func NewConcurrentModificationError(caseID string, expected, actual int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeConcurrentModification,
		Message:   "Case was modified by another request",
		Details:   fmt.Sprintf("caseId: %s, expectedVersion: %d, actualVersion: %d", caseID, expected, actual),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCaseNotFoundError creates a non-retryable missing case error.
func NewCaseNotFoundError(caseID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCaseNotFound,
		Message:   "Case record not found",
		Details:   fmt.Sprintf("caseId: %s", caseID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMutationError rejects malformed fee/document/note payloads.
func NewInvalidMutationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMutation,
		Message:   "Case mutation payload failed shape validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseWriteFailedError creates a retryable persistence error.
func NewDatabaseWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseWriteFailed,
		Message:   "Database write operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseReadFailedError creates a retryable persistence error.
func NewDatabaseReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseReadFailed,
		Message:   "Database read operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry budget per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeConcurrentModification,
		ErrCodeDatabaseWriteFailed,
		ErrCodeDatabaseReadFailed:
		return 3

	default:
		return 0 // policy and data errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}
