// models/common_models.go
package models

// SuccessResponse is the envelope for every successful domain operation.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
	Data    any  `json:"data"`
}

// FailureResponse is the envelope for failed domain operations.
type FailureResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Domain name is required"`
}

// APIErrorResponse is written by the router-level error handler for
// unmatched routes, unreadable bodies and recovered panics.
type APIErrorResponse struct {
	Message string `json:"message"`         // User-friendly error message
	Error   any    `json:"error,omitempty"` // Detail in development, {} otherwise, absent on 404
	Status  int    `json:"status"`          // HTTP status code
}

// ErrorDetail is the development-mode payload of APIErrorResponse.Error.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
