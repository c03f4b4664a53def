// Package gateway is the single outbound channel for tracker API calls.
package gateway

import (
	"errors"
	"fmt"
)

// Fixed user-facing messages for normalized failures.
const (
	MsgSessionExpired = "session expired, please log in again"
	MsgForbidden      = "not authorized to perform this action"
	MsgNotFound       = "requested resource not found"
	MsgInvalidParams  = "invalid request parameters"
	MsgServerError    = "internal server error"
	MsgNetworkError   = "network error, check connection"
	MsgConfigError    = "request configuration error"
	MsgBadPayload     = "invalid response payload"
)

// APIError is the uniform failure shape delivered to every gateway
// caller, regardless of the underlying transport or server cause.
type APIError struct {
	Message string // Always non-empty
	Status  int    // HTTP status when known, 0 otherwise
	Code    string // Server-supplied error code, if any
	Cause   error  // Underlying error (transport failures)
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// errorBody is the server's error response payload.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// normalizeStatus maps a failed HTTP status to the normalized error.
// serverMsg and code come from the response body when one was parseable.
func normalizeStatus(status int, serverMsg, code string) *APIError {
	e := &APIError{Status: status, Code: code}

	switch status {
	case 401:
		e.Message = MsgSessionExpired
	case 403:
		e.Message = MsgForbidden
	case 404:
		e.Message = MsgNotFound
	case 422:
		e.Message = MsgInvalidParams
		if serverMsg != "" {
			e.Message = serverMsg
		}
	case 500:
		e.Message = MsgServerError
	default:
		e.Message = fmt.Sprintf("request failed (%d)", status)
		if serverMsg != "" {
			e.Message = serverMsg
		}
	}

	return e
}

// networkError normalizes a transport failure that occurred after the
// request was sent (connection refused, reset, deadline).
func networkError(cause error) *APIError {
	return &APIError{Message: MsgNetworkError, Cause: cause}
}

// configError normalizes a failure that occurred before a request could
// be built or sent.
func configError(cause error) *APIError {
	return &APIError{Message: MsgConfigError, Cause: cause}
}
