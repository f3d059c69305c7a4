// Package contextutils provides error handling utilities and standardized error types
// for consistent error management across the consulting marketplace backend.
package contextutils

import (
	"fmt"
	"strings"
)

// ErrorCode represents a standardized error code for API responses
type ErrorCode string

const (
	// Database error codes

	// ErrorCodeDatabaseConnection indicates a database connection error
	ErrorCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"
	// ErrorCodeDatabaseQuery indicates a database query error
	ErrorCodeDatabaseQuery ErrorCode = "DATABASE_QUERY_ERROR"
	// ErrorCodeRecordNotFound indicates that a requested record was not found
	ErrorCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"
	// ErrorCodeRecordExists indicates that a record already exists
	ErrorCodeRecordExists ErrorCode = "RECORD_ALREADY_EXISTS"

	// Validation error codes

	// ErrorCodeInvalidInput indicates that the provided input is invalid
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeMissingRequired indicates that a required field is missing
	ErrorCodeMissingRequired ErrorCode = "MISSING_REQUIRED_FIELD"
	// ErrorCodeInvalidTier indicates that the requested service tier is unknown
	ErrorCodeInvalidTier ErrorCode = "INVALID_TIER"
	// ErrorCodeInvalidTransition indicates a request status change that violates the lifecycle
	ErrorCodeInvalidTransition ErrorCode = "INVALID_STATUS_TRANSITION"

	// Authentication error codes

	// ErrorCodeUnauthorized indicates that the caller is not authorized
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrorCodeInvalidCredentials indicates that the provided credentials are invalid
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrorCodeSessionExpired indicates that the admin session has expired
	ErrorCodeSessionExpired ErrorCode = "SESSION_EXPIRED"

	// Service error codes

	// ErrorCodeServiceUnavailable indicates that the service is temporarily unavailable
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrorCodeTimeout indicates that a request has timed out
	ErrorCodeTimeout ErrorCode = "REQUEST_TIMEOUT"
	// ErrorCodeInternalError indicates an internal server error
	ErrorCodeInternalError ErrorCode = "INTERNAL_SERVER_ERROR"

	// Payment error codes

	// ErrorCodePaymentSessionFailed indicates the payment processor rejected a session create
	ErrorCodePaymentSessionFailed ErrorCode = "PAYMENT_SESSION_FAILED"
	// ErrorCodePaymentNotConfigured indicates the payment processor keys are missing
	ErrorCodePaymentNotConfigured ErrorCode = "PAYMENT_NOT_CONFIGURED"

	// Notification error codes

	// ErrorCodeEmailSendFailed indicates the email provider rejected a send
	ErrorCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"

	// AI error codes

	// ErrorCodeAIRequestFailed indicates that the generative-text request failed
	ErrorCodeAIRequestFailed ErrorCode = "AI_REQUEST_FAILED"
	// ErrorCodeAIResponseInvalid indicates that the generative-text response is invalid
	ErrorCodeAIResponseInvalid ErrorCode = "AI_RESPONSE_INVALID"
	// ErrorCodeAIConfigInvalid indicates that the generative-text configuration is invalid
	ErrorCodeAIConfigInvalid ErrorCode = "AI_CONFIG_INVALID"
)

// SeverityLevel represents the severity of an error for logging and monitoring
type SeverityLevel string

const (
	// SeverityDebug indicates debug-level errors for development
	SeverityDebug SeverityLevel = "debug"
	// SeverityInfo indicates informational errors
	SeverityInfo SeverityLevel = "info"
	// SeverityWarn indicates warning-level errors
	SeverityWarn SeverityLevel = "warn"
	// SeverityError indicates error-level issues
	SeverityError SeverityLevel = "error"
	// SeverityFatal indicates fatal errors that require immediate attention
	SeverityFatal SeverityLevel = "fatal"
)

// AppError represents a structured error with code, severity, and context
type AppError struct {
	Code     ErrorCode
	Severity SeverityLevel
	Message  string
	Details  string
	Cause    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Code == appErr.Code
	}
	return false
}

// Error types for consistent error handling with associated codes and severity
var (
	ErrDatabaseConnection = &AppError{
		Code:     ErrorCodeDatabaseConnection,
		Severity: SeverityError,
		Message:  "Database connection failed",
	}

	ErrDatabaseQuery = &AppError{
		Code:     ErrorCodeDatabaseQuery,
		Severity: SeverityError,
		Message:  "Database query failed",
	}

	ErrRecordNotFound = &AppError{
		Code:     ErrorCodeRecordNotFound,
		Severity: SeverityInfo,
		Message:  "Record not found",
	}

	ErrRecordExists = &AppError{
		Code:     ErrorCodeRecordExists,
		Severity: SeverityInfo,
		Message:  "Record already exists",
	}

	ErrInvalidInput = &AppError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  "Invalid input",
	}

	ErrMissingRequired = &AppError{
		Code:     ErrorCodeMissingRequired,
		Severity: SeverityWarn,
		Message:  "Missing required field",
	}

	ErrInvalidTier = &AppError{
		Code:     ErrorCodeInvalidTier,
		Severity: SeverityWarn,
		Message:  "Unknown service tier",
	}

	ErrInvalidTransition = &AppError{
		Code:     ErrorCodeInvalidTransition,
		Severity: SeverityWarn,
		Message:  "Status transition not allowed",
	}

	ErrUnauthorized = &AppError{
		Code:     ErrorCodeUnauthorized,
		Severity: SeverityWarn,
		Message:  "Unauthorized",
	}

	ErrInvalidCredentials = &AppError{
		Code:     ErrorCodeInvalidCredentials,
		Severity: SeverityWarn,
		Message:  "Invalid credentials",
	}

	ErrSessionExpired = &AppError{
		Code:     ErrorCodeSessionExpired,
		Severity: SeverityInfo,
		Message:  "Session expired",
	}

	ErrServiceUnavailable = &AppError{
		Code:     ErrorCodeServiceUnavailable,
		Severity: SeverityError,
		Message:  "Service unavailable",
	}

	ErrTimeout = &AppError{
		Code:     ErrorCodeTimeout,
		Severity: SeverityWarn,
		Message:  "Request timeout",
	}

	ErrInternalError = &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  "Internal server error",
	}

	ErrPaymentSessionFailed = &AppError{
		Code:     ErrorCodePaymentSessionFailed,
		Severity: SeverityError,
		Message:  "Failed to create checkout session",
	}

	ErrPaymentNotConfigured = &AppError{
		Code:     ErrorCodePaymentNotConfigured,
		Severity: SeverityError,
		Message:  "Payment processor not configured",
	}

	ErrEmailSendFailed = &AppError{
		Code:     ErrorCodeEmailSendFailed,
		Severity: SeverityWarn,
		Message:  "Failed to send email",
	}

	ErrAIRequestFailed = &AppError{
		Code:     ErrorCodeAIRequestFailed,
		Severity: SeverityError,
		Message:  "AI request failed",
	}

	ErrAIResponseInvalid = &AppError{
		Code:     ErrorCodeAIResponseInvalid,
		Severity: SeverityError,
		Message:  "AI response invalid",
	}

	ErrAIConfigInvalid = &AppError{
		Code:     ErrorCodeAIConfigInvalid,
		Severity: SeverityError,
		Message:  "AI configuration invalid",
	}
)

// NewAppError creates a new AppError with the specified code, severity, message and details
func NewAppError(code ErrorCode, severity SeverityLevel, message, details string) *AppError {
	return &AppError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
	}
}

// NewAppErrorWithCause creates a new AppError with an underlying cause
func NewAppErrorWithCause(code ErrorCode, severity SeverityLevel, message, details string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
		Cause:    cause,
	}
}

// WrapError wraps an error with additional context, preserving AppError structure if possible
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:     appErr.Code,
			Severity: appErr.Severity,
			Message:  context,
			Details:  appErr.Error(),
			Cause:    appErr,
		}
	}

	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// WrapErrorf wraps an error with formatted context, preserving AppError structure if possible
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	// Handle %w verb for error wrapping by using fmt.Errorf
	if strings.Contains(format, "%w") {
		wrappedErr := fmt.Errorf(format, args...)

		if appErr, ok := err.(*AppError); ok {
			return &AppError{
				Code:     appErr.Code,
				Severity: appErr.Severity,
				Message:  wrappedErr.Error(),
				Details:  appErr.Error(),
				Cause:    wrappedErr,
			}
		}

		return &AppError{
			Code:     ErrorCodeInternalError,
			Severity: SeverityError,
			Message:  wrappedErr.Error(),
			Details:  err.Error(),
			Cause:    wrappedErr,
		}
	}

	context := fmt.Sprintf(format, args...)
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:     appErr.Code,
			Severity: appErr.Severity,
			Message:  context,
			Details:  appErr.Error(),
			Cause:    appErr,
		}
	}

	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// ErrorWithContextf creates a new error with formatted context
func ErrorWithContextf(format string, args ...interface{}) error {
	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	}
}

// IsError checks if an error matches a specific AppError type
func IsError(err error, target *AppError) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == target.Code
	}
	return false
}

// GetErrorCode returns the error code from an error if it's an AppError, otherwise returns a default code
func GetErrorCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrorCodeInternalError
}

// GetErrorSeverity returns the severity level from an error if it's an AppError, otherwise returns error
func GetErrorSeverity(err error) SeverityLevel {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Severity
	}
	return SeverityError
}

// IsRetryable determines if an error should be retried based on its type and severity
func IsRetryable(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		switch appErr.Code {
		case ErrorCodeTimeout, ErrorCodeServiceUnavailable, ErrorCodeDatabaseConnection:
			return appErr.Severity != SeverityFatal
		}
	}
	return false
}

// ToJSON converts an AppError to a JSON-serializable structure for API responses
func (e *AppError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"code":     string(e.Code),
		"message":  e.Message,
		"severity": string(e.Severity),
		"error":    e.Message,
	}

	if e.Details != "" {
		result["details"] = e.Details
	}

	result["retryable"] = IsRetryable(e)

	if e.Cause != nil {
		switch e.Severity {
		case SeverityError, SeverityFatal:
			result["cause"] = e.Cause.Error()
		}
	}

	return result
}
