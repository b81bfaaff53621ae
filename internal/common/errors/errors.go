// internal/common/errors/errors.go

// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidation           ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidFilterFormat  ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeDataIntegrityWarning ErrorCode = "DATA_INTEGRITY_WARNING"

	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeCatalogTimeout     ErrorCode = "CATALOG_TIMEOUT"
	ErrCodeSearchQueryFailed  ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeOracleUnavailable   ErrorCode = "ORACLE_UNAVAILABLE"
	ErrCodeOracleRateLimited   ErrorCode = "ORACLE_RATE_LIMITED"
	ErrCodeAnalysisUnavailable ErrorCode = "ANALYSIS_UNAVAILABLE"

	ErrCodePlanNotFound    ErrorCode = "PLAN_NOT_FOUND"
	ErrCodePlanStoreFailed ErrorCode = "PLAN_STORE_FAILED"
	ErrCodePlanShareFailed ErrorCode = "PLAN_SHARE_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
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

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports missing or invalid event fields. Never retried.
func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidation, "Event requirement validation failed", details, false)
}

func NewInvalidFilterFormatError(details string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid filter format", details, false)
}

// NewDataIntegrityWarning describes an out-of-range venue field that was clamped.
func NewDataIntegrityWarning(venueID, field string, got, clampedTo interface{}) *StandardError {
	return newError(ErrCodeDataIntegrityWarning, "Venue field out of range",
		fmt.Sprintf("venueId: %s, field: %s, value: %v, clampedTo: %v", venueID, field, got, clampedTo), false).
		WithMetadata("venueId", venueID).
		WithMetadata("field", field)
}

func NewCatalogQueryFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogQueryFailed, "Venue catalog query failed",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewCatalogTimeoutError(source string) *StandardError {
	return newError(ErrCodeCatalogTimeout, "Venue catalog query timeout",
		fmt.Sprintf("source: %s", source), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

// NewOracleUnavailableError covers network, non-2xx and malformed replies.
// It is recovered locally by the deterministic fallback.
func NewOracleUnavailableError(err error) *StandardError {
	return newError(ErrCodeOracleUnavailable, "Reasoning oracle unavailable", err.Error(), true)
}

func NewOracleRateLimitedError() *StandardError {
	return newError(ErrCodeOracleRateLimited, "Reasoning oracle rate limit reached", "", false)
}

func NewAnalysisUnavailableError(details string) *StandardError {
	return newError(ErrCodeAnalysisUnavailable, "Venue analysis unavailable", details, false)
}

func NewPlanNotFoundError(planID string) *StandardError {
	return newError(ErrCodePlanNotFound, "Plan summary not found", fmt.Sprintf("planId: %s", planID), false)
}

func NewPlanStoreFailedError(err error) *StandardError {
	return newError(ErrCodePlanStoreFailed, "Plan summary store error", err.Error(), true)
}

func NewPlanShareFailedError(channel string, err error) *StandardError {
	return newError(ErrCodePlanShareFailed, "Plan summary share failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("%s service error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("%s timeout", service), err.Error(), true)
}

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidation:          "VALIDATION_ERROR",
	ErrCodeInvalidFilterFormat: "INVALID_FILTER_FORMAT",
	ErrCodeCatalogQueryFailed:  "CATALOG_QUERY_FAILED",
	ErrCodeCatalogTimeout:      "CATALOG_TIMEOUT",
	ErrCodeSearchQueryFailed:   "SEARCH_QUERY_FAILED",
	ErrCodeOracleUnavailable:   "ORACLE_UNAVAILABLE",
	ErrCodeOracleRateLimited:   "ORACLE_RATE_LIMITED",
	ErrCodeAnalysisUnavailable: "ANALYSIS_UNAVAILABLE",
	ErrCodePlanNotFound:        "PLAN_NOT_FOUND",
	ErrCodePlanStoreFailed:     "PLAN_STORE_FAILED",
	ErrCodePlanShareFailed:     "PLAN_SHARE_FAILED",
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogQueryFailed,
		ErrCodeSearchQueryFailed,
		ErrCodePlanStoreFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeCatalogTimeout,
		ErrCodePlanShareFailed,
		ErrCodeTimeout:
		return 2

	case ErrCodeOracleUnavailable:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
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
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "INTEGRITY"):
		return "DATA"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "SEARCH"):
		return "CATALOG"
	case strings.Contains(codeStr, "ORACLE") || strings.Contains(codeStr, "ANALYSIS"):
		return "AI"
	case strings.Contains(codeStr, "PLAN"):
		return "PLAN"
	default:
		return "OTHER"
	}
}

// AsStandard unwraps err into a *StandardError if one is in the chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}
