package domain

import (
	"errors"
	"fmt"
	"time"
)

// APIError represents a standardized error response
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrInvalidInput        = "INVALID_INPUT"
	ErrValidation          = "VALIDATION_ERROR"
	ErrNotFoundCode        = "NOT_FOUND"
	ErrDatabaseError       = "DATABASE_ERROR"
	ErrAnalysisUnavailable = "ANALYSIS_UNAVAILABLE"
	ErrRateLimit           = "RATE_LIMIT_EXCEEDED"
	ErrInternalServer      = "INTERNAL_SERVER_ERROR"
)

var (
	// ErrNotFound is returned by repositories when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrKnowledgeBaseUnavailable means the engine has no knowledge base to score against
	ErrKnowledgeBaseUnavailable = errors.New("knowledge base not loaded")

	// ErrCacheMiss is returned by caches when a key is absent or expired
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AnalysisUnavailableError is returned when triage could not run. Fallback holds a
// conservative result that callers can still show or persist.
type AnalysisUnavailableError struct {
	Cause    error
	Fallback *TriageResult
}

// Error implements the error interface
func (e *AnalysisUnavailableError) Error() string {
	return fmt.Sprintf("analysis unavailable: %v", e.Cause)
}

// Unwrap returns the underlying cause
func (e *AnalysisUnavailableError) Unwrap() error {
	return e.Cause
}

// AsAnalysisUnavailable extracts an AnalysisUnavailableError from err
func AsAnalysisUnavailable(err error) (*AnalysisUnavailableError, bool) {
	var ue *AnalysisUnavailableError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
