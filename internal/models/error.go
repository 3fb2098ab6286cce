package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Catalog-specific errors
	ErrPizzaNotFound    = "PIZZA_NOT_FOUND"
	ErrPizzaExists      = "PIZZA_ALREADY_EXISTS"
	ErrToppingNotFound  = "TOPPING_NOT_FOUND"
	ErrToppingExists    = "TOPPING_ALREADY_EXISTS"
	ErrInvalidID        = "INVALID_ID"
	ErrInvalidCSRFToken = "INVALID_CSRF_TOKEN"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
