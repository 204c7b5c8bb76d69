package errors

import "fmt"

// ErrorCode represents a CodeGen error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrRateLimited    ErrorCode = "RATE_LIMITED"    // 429
	ErrUpstreamFailed ErrorCode = "UPSTREAM_FAILED" // 502
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// CodeGenError represents a structured error with code, status, and details.
type CodeGenError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CodeGenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CodeGenError {
	return &CodeGenError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown generation id.
func NewNotFound(id string) *CodeGenError {
	return &CodeGenError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("generation not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewPreviewNotFound creates a 404 error for a preview absent from both the
// memory tier and disk.
func NewPreviewNotFound(id string) *CodeGenError {
	return &CodeGenError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "Preview not found",
		Details: map[string]any{"id": id},
	}
}

// NewRateLimited creates a 429 error for clients over their request budget.
func NewRateLimited() *CodeGenError {
	return &CodeGenError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "too many requests",
	}
}

// NewUpstreamFailed creates a 502 error for a failed model call.
func NewUpstreamFailed(err error) *CodeGenError {
	details := map[string]any{}
	if err != nil {
		details["details"] = err.Error()
	}
	return &CodeGenError{
		Code:    ErrUpstreamFailed,
		Status:  502,
		Message: "AI generation failed",
		Details: details,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *CodeGenError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CodeGenError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a CodeGenError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*CodeGenError); ok {
		return cErr.Code == code
	}
	return false
}
