// Package errors provides standardized error handling for the site
// analysis pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Fatal precondition: one or more resource categories is empty for
	// the requested region. The run aborts before candidate generation.
	ErrCodeInsufficientResources ErrorCode = "INSUFFICIENT_RESOURCES"

	// Local, per-item: a resource or candidate carries non-finite or
	// out-of-range coordinates. Skip-and-warn, never aborts a run.
	ErrCodeInvalidCoordinate ErrorCode = "INVALID_COORDINATE"

	// Local, per-item: a scored site fails persistence-shape validation
	// and is dropped during the mapping step.
	ErrCodeInvalidSiteData ErrorCode = "INVALID_SITE_DATA"

	// The persistence boundary rejected the write. Propagated to the
	// caller unmodified; the caller may retry the whole analysis.
	ErrCodeRepositoryFailure ErrorCode = "REPOSITORY_FAILURE"

	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeAnalysisTimeout    ErrorCode = "ANALYSIS_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInsufficientResourcesError creates the fatal precondition error.
// emptyCategories names the resource kinds the region is missing.
func NewInsufficientResourcesError(region string, emptyCategories []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientResources,
		Message:   "One or more resource categories are empty for the region",
		Details:   fmt.Sprintf("region=%s empty=%v", region, emptyCategories),
		Retryable: false,
		Metadata: map[string]interface{}{
			"region":          region,
			"emptyCategories": emptyCategories,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCoordinateError creates the per-item coordinate error.
func NewInvalidCoordinateError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCoordinate,
		Message:   "Resource or candidate has malformed coordinates",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSiteDataError creates the per-item persistence-shape error.
func NewInvalidSiteDataError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSiteData,
		Message:   "Scored site fails persistence validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRepositoryFailureError wraps a persistence error. Marked retryable
// because the caller may rerun the whole analysis; the pipeline itself
// never retries.
func NewRepositoryFailureError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRepositoryFailure,
		Message:   "Persistence boundary rejected the write",
		Details:   cause.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewCatalogQueryFailedError wraps a catalog backend error.
func NewCatalogQueryFailedError(region string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Resource catalog query failed",
		Details:   cause.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"region": region},
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewAnalysisTimeoutError reports that the run deadline elapsed before
// the pipeline finished.
func NewAnalysisTimeoutError(region string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisTimeout,
		Message:   "Analysis run exceeded its deadline",
		Retryable: true,
		Metadata:  map[string]interface{}{"region": region},
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidRequestError creates a validation error for analysis
// invocation parameters.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid analysis request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Inspection Helpers
// ==========================

// CodeOf extracts the error code, or empty string for foreign errors.
func CodeOf(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return ""
}

// IsInsufficientResources reports whether err is the fatal empty-category
// precondition failure.
func IsInsufficientResources(err error) bool {
	return CodeOf(err) == ErrCodeInsufficientResources
}

// IsRetryable reports whether a whole-run retry by the caller could
// succeed.
func IsRetryable(err error) bool {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Retryable
	}
	return false
}
