// Package domain defines the core domain models for custrack.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "CT-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrNotAuthenticated indicates no authenticated session is present.
	ErrNotAuthenticated = NewDomainError("CT-AUTH-4010", "not authenticated")

	// ErrMissingCredentials indicates login was attempted without credentials.
	ErrMissingCredentials = NewDomainError("CT-AUTH-4000", "username and password are required")

	// ErrNoStoredToken indicates no persisted token exists.
	ErrNoStoredToken = NewDomainError("CT-AUTH-4040", "no stored credential")
)

// ============================================================================
// Customer Errors (CUST)
// ============================================================================

var (
	// ErrCustomerName indicates a missing or oversized customer name.
	ErrCustomerName = NewDomainError("CT-CUST-4000", "customer name is required")

	// ErrCustomerRate indicates a rating outside the allowed range.
	ErrCustomerRate = NewDomainError("CT-CUST-4001", "customer rate out of range")

	// ErrCustomerID indicates a non-positive customer ID.
	ErrCustomerID = NewDomainError("CT-CUST-4002", "invalid customer id")
)

// ============================================================================
// Track Errors (TRCK)
// ============================================================================

var (
	// ErrTrackContent indicates missing follow-up content.
	ErrTrackContent = NewDomainError("CT-TRCK-4000", "track content is required")

	// ErrTrackNextAction indicates an unknown next-action value.
	ErrTrackNextAction = NewDomainError("CT-TRCK-4001", "unknown next action")

	// ErrTrackID indicates a non-positive track ID.
	ErrTrackID = NewDomainError("CT-TRCK-4002", "invalid track id")
)
