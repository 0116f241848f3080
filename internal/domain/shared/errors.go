package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Constraint names the storage constraint that rejected the write, if any
	Constraint string `json:"constraint,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so errors.Is(err, ErrNotFound) holds for
// any NOT_FOUND error regardless of its message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewConstraintError creates a domain error raised by a storage constraint
func NewConstraintError(code, message, constraint string) *DomainError {
	return &DomainError{
		Code:       code,
		Message:    message,
		Constraint: constraint,
	}
}

// AsDomainError unwraps err into a *DomainError
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrReferenced          = NewDomainError("REFERENCED", "Resource is still referenced by other records")
	ErrConstraintViolation = NewDomainError("CONSTRAINT_VIOLATION", "Write rejected by a storage constraint")
)
