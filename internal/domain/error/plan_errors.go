// Package error defines domain-specific errors for the financial planner.
package error

import "errors"

// Plan domain errors.
var (
	// ErrPlanValidation is returned when a plan violates a data-model invariant.
	ErrPlanValidation = errors.New("invalid financial plan")

	// ErrPlanNotFound is returned when a plan id is absent from the scope.
	ErrPlanNotFound = errors.New("financial plan not found")

	// ErrInvalidDateRange is returned when a query window starts after it ends.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrStorageUnavailable is returned when the backing plan store is unreachable or faulted.
	ErrStorageUnavailable = errors.New("plan storage unavailable")
)

// PlanErrorCode defines error codes for plan errors.
// Format: PLN-XXYYYY where XX is category and YYYY is specific error.
type PlanErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTitle         PlanErrorCode = "PLN-010001"
	ErrCodeInvalidAmount        PlanErrorCode = "PLN-010002"
	ErrCodeInvalidPlanType      PlanErrorCode = "PLN-010003"
	ErrCodeInvalidCategory      PlanErrorCode = "PLN-010004"
	ErrCodeInvalidStartDate     PlanErrorCode = "PLN-010005"
	ErrCodeEndBeforeStart       PlanErrorCode = "PLN-010006"
	ErrCodeInvalidRecurringType PlanErrorCode = "PLN-010007"
	ErrCodeMissingRecurringType PlanErrorCode = "PLN-010008"
	ErrCodeMalformedPlan        PlanErrorCode = "PLN-010009"

	// Lookup errors (02XXXX)
	ErrCodePlanNotFound PlanErrorCode = "PLN-020001"

	// Query errors (03XXXX)
	ErrCodeInvalidDateRange PlanErrorCode = "PLN-030001"

	// Storage errors (05XXXX)
	ErrCodeStorageUnavailable PlanErrorCode = "PLN-050001"
)

// PlanError represents a plan error with code, message and, for validation
// failures, the offending field.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError creates a new PlanError with the given code and message.
func NewPlanError(code PlanErrorCode, message string, err error) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewPlanValidationError creates a validation PlanError for a single field.
func NewPlanValidationError(code PlanErrorCode, field, message string) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
		Field:   field,
		Err:     ErrPlanValidation,
	}
}

// NewPlanNotFoundError creates a PlanError for a missing plan id.
func NewPlanNotFoundError(id string) *PlanError {
	return &PlanError{
		Code:    ErrCodePlanNotFound,
		Message: "financial plan " + id + " not found",
		Err:     ErrPlanNotFound,
	}
}

// NewInvalidDateRangeError creates a PlanError for a malformed query window.
func NewInvalidDateRangeError(message string) *PlanError {
	return &PlanError{
		Code:    ErrCodeInvalidDateRange,
		Message: message,
		Err:     ErrInvalidDateRange,
	}
}

// NewStorageUnavailableError wraps a backing store failure.
func NewStorageUnavailableError(cause error) *PlanError {
	return &PlanError{
		Code:    ErrCodeStorageUnavailable,
		Message: "plan storage unavailable",
		Err:     errors.Join(ErrStorageUnavailable, cause),
	}
}
