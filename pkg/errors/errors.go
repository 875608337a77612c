// Package errors provides structured error types for idpctl.
package errors

import (
	"fmt"
)

// ErrorCode identifies specific error conditions
type ErrorCode string

const (
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeValidation  ErrorCode = "VALIDATION_ERROR"
	ErrCodeSchemaFetch ErrorCode = "SCHEMA_FETCH_ERROR"
	ErrCodeSuperseded  ErrorCode = "SUPERSEDED"
	ErrCodeRemote      ErrorCode = "REMOTE_ERROR"
	ErrCodeConflict    ErrorCode = "CONFLICT"
	ErrCodeParse       ErrorCode = "PARSE_ERROR"
)

// Error is the base error type for idpctl
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Wrap creates a new error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a single detail to an error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// NotFoundError creates a not found error for a catalog lookup miss.
// Lookup misses are surfaced by failing, never by silently defaulting;
// a silent default would corrupt a submitted payload.
func NotFoundError(entity, key string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q not found", entity, key),
		Details: map[string]interface{}{
			"entity": entity,
			"key":    key,
		},
	}
}

// ValidationError creates a validation error enumerating the violated rules.
func ValidationError(message string, violations []string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
		Details: map[string]interface{}{
			"violations": violations,
		},
	}
}

// SchemaFetchError creates a schema fetch error. These are transient
// transport failures; the caller decides whether to retry.
func SchemaFetchError(resourceTypeID, cloudProviderID string, cause error) *Error {
	return &Error{
		Code:    ErrCodeSchemaFetch,
		Message: "failed to fetch property schema",
		Cause:   cause,
		Details: map[string]interface{}{
			"resource_type_id":  resourceTypeID,
			"cloud_provider_id": cloudProviderID,
		},
	}
}

// SupersededError marks a schema fetch whose result arrived after a newer
// request was issued for the same (resource type, cloud provider) pair.
func SupersededError(resourceTypeID, cloudProviderID string) *Error {
	return &Error{
		Code:    ErrCodeSuperseded,
		Message: "schema fetch superseded by a newer request",
		Details: map[string]interface{}{
			"resource_type_id":  resourceTypeID,
			"cloud_provider_id": cloudProviderID,
		},
	}
}

// RemoteError creates an error for a failed platform API call.
func RemoteError(operation string, status int, cause error) *Error {
	return &Error{
		Code:    ErrCodeRemote,
		Message: fmt.Sprintf("platform API %s failed", operation),
		Cause:   cause,
		Details: map[string]interface{}{
			"operation": operation,
			"status":    status,
		},
	}
}

// ParseError creates a parse error for a draft file.
func ParseError(filePath string, err error) *Error {
	return &Error{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("failed to parse %s", filePath),
		Cause:   err,
		Details: map[string]interface{}{
			"file": filePath,
		},
	}
}

// Is checks if the error matches the given code
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
