package errors

import "fmt"

// Error codes
const (
	ErrCodeInvalidGrade     = "INVALID_GRADE"
	ErrCodeNoCurrentItem    = "NO_CURRENT_ITEM"
	ErrCodeStaleItem        = "STALE_ITEM"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "STALE_ITEM", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidGradeError reports a quality grade outside the accepted [0,5] range.
func NewInvalidGradeError(quality int) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidGrade,
		Message: fmt.Sprintf("quality %d is outside the valid range [0,5]", quality),
		Status:  400,
	}
}

// NewNoCurrentItemError reports a grade submitted while no item is being presented.
func NewNoCurrentItemError() *AppError {
	return &AppError{
		Code:    ErrCodeNoCurrentItem,
		Message: "no item is currently presented for review",
		Status:  409,
	}
}

// NewStaleItemError reports a grade targeting an item that is not the current head.
func NewStaleItemError(itemID, currentID string) *AppError {
	return &AppError{
		Code:    ErrCodeStaleItem,
		Message: fmt.Sprintf("item %s is not the current review item (current: %s)", itemID, currentID),
		Status:  409,
	}
}

// NewStoreUnavailableError reports a failed store operation. The operation name
// and the underlying error are preserved so the caller can decide on a retry.
func NewStoreUnavailableError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStoreUnavailable,
		Message: fmt.Sprintf("store operation %s failed", op),
		Status:  503,
		Err:     err,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}
