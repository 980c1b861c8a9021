// Package errors provides standardized error handling for the portal services.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Wizard / application errors
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeSubmissionFailed            ErrorCode = "SUBMISSION_FAILED"
	ErrCodeDatabaseInsertFailed        ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateApplication        ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeInvalidStatusTransition     ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeApplicationNotFound         ErrorCode = "APPLICATION_NOT_FOUND"

	// Persistence errors (logged and swallowed at the source)
	ErrCodeStorageReadFailed  ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageWriteFailed ErrorCode = "STORAGE_WRITE_FAILED"

	// Assistant errors
	ErrCodeLLMTimeout             ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMRequestFailed       ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeMissingCredential      ErrorCode = "MISSING_CREDENTIAL"
	ErrCodeContentPolicyViolation ErrorCode = "CONTENT_POLICY_VIOLATION"

	// Directory search errors
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	// Notification errors
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// ==========================
// 2. Error Constructors
// ==========================

// NewApplicationValidationFailedError creates a non-retryable validation error.
func NewApplicationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationValidationFailed,
		Message:   "Application data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError creates a retryable submission error. The draft is
// left intact so the caller can resubmit without re-entering data.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Application submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable duplicate error.
func NewDuplicateApplicationError(reference string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Application already exists",
		Details:   fmt.Sprintf("reference: %s", reference),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStatusTransitionError creates a non-retryable lifecycle error.
func NewInvalidStatusTransitionError(from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStatusTransition,
		Message:   "Application status transition not allowed",
		Details:   fmt.Sprintf("from: %s, to: %s", from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationNotFoundError creates a non-retryable lookup error.
func NewApplicationNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageReadFailedError creates a retryable storage read error.
func NewStorageReadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageReadFailed,
		Message:   "Storage read failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageWriteFailedError creates a retryable storage write error.
func NewStorageWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageWriteFailed,
		Message:   "Storage write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable timeout error for assistant calls.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Request timed out.",
		Details:   "completion call exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMRequestFailedError creates a retryable assistant call error. The
// provider message is preferred when available.
func NewLLMRequestFailedError(providerMessage string) *StandardError {
	msg := providerMessage
	if strings.TrimSpace(msg) == "" {
		msg = "AI request failed"
	}
	return &StandardError{
		Code:      ErrCodeLLMRequestFailed,
		Message:   msg,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingCredentialError creates a non-retryable configuration error.
func NewMissingCredentialError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingCredential,
		Message:   fmt.Sprintf("Missing credential: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContentPolicyViolationError creates a non-retryable policy error.
func NewContentPolicyViolationError() *StandardError {
	return &StandardError{
		Code:      ErrCodeContentPolicyViolation,
		Message:   "Your message contains language that violates our usage policy. Please rephrase or contact support.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable directory search error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Directory search query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSubmissionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeStorageReadFailed,
		ErrCodeStorageWriteFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeSearchQueryFailed:
		return 3

	case ErrCodeLLMRequestFailed:
		return 2

	case ErrCodeLLMTimeout:
		return 1

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "STATUS"):
		return "VALIDATION"
	case strings.Contains(codeStr, "STORAGE"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "CREDENTIAL") || strings.Contains(codeStr, "POLICY"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "DUPLICATE") || strings.Contains(codeStr, "SUBMISSION"):
		return "SUBMISSION"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	default:
		return "OTHER"
	}
}
