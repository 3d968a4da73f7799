package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Reason carries a machine-distinguishable detail for FORBIDDEN errors
	// (WRONG_TENANT, INSUFFICIENT_ROLE, UNAUTHENTICATED).
	Reason string `json:"reason,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_ERROR with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewForbiddenError creates a FORBIDDEN error carrying the deny reason
func NewForbiddenError(reason, message string) *DomainError {
	return &DomainError{
		Code:    CodeForbidden,
		Message: message,
		Reason:  reason,
	}
}

// Error codes used across the domain
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authenticated")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// IsCode reports whether err is a DomainError with the given code
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if de, ok := err.(*DomainError); ok {
		return de.Code == code
	}
	return false
}
