package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents client-input errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeLLM represents upstream completion-provider errors
	ErrorTypeLLM ErrorType = "llm"
	// ErrorTypeCatalog represents product catalog errors
	ErrorTypeCatalog ErrorType = "catalog"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrEmptyMessage is returned when a chat message is empty or whitespace
var ErrEmptyMessage = NewBaseError(ErrorTypeValidation, "message must not be empty", nil)

// ErrMissingField is returned when a required request field is missing
type ErrMissingField struct {
	*BaseError
	Field string
}

func NewMissingField(field string) *ErrMissingField {
	return &ErrMissingField{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("missing required field: %s", field), nil),
		Field:     field,
	}
}

// Graph Errors

// ErrGraphUnavailable is returned when the Neo4j connection fails
type ErrGraphUnavailable struct {
	*BaseError
	URI string
}

func NewGraphUnavailable(uri string, err error) *ErrGraphUnavailable {
	return &ErrGraphUnavailable{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("graph database unavailable: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("graph operation failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrProfileNotFound is returned when a user profile is not in the graph
type ErrProfileNotFound struct {
	*BaseError
	UserID string
}

func NewProfileNotFound(userID string) *ErrProfileNotFound {
	return &ErrProfileNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("profile not found: %s", userID), nil),
		UserID:    userID,
	}
}

// LLM Errors

// ErrLLMRequestFailed is returned when the completion provider errors or times out
type ErrLLMRequestFailed struct {
	*BaseError
	Model string
}

func NewLLMRequestFailed(model string, err error) *ErrLLMRequestFailed {
	return &ErrLLMRequestFailed{
		BaseError: NewBaseError(ErrorTypeLLM, fmt.Sprintf("completion request failed: %s", model), err),
		Model:     model,
	}
}

// ErrLLMEmptyResponse is returned when the provider returns no choices
var ErrLLMEmptyResponse = NewBaseError(ErrorTypeLLM, "no choices in completion response", nil)

// Catalog Errors

// ErrCatalogFetchFailed is returned when the product search endpoint cannot be read
type ErrCatalogFetchFailed struct {
	*BaseError
	URL string
}

func NewCatalogFetchFailed(url string, err error) *ErrCatalogFetchFailed {
	return &ErrCatalogFetchFailed{
		BaseError: NewBaseError(ErrorTypeCatalog, fmt.Sprintf("catalog fetch failed: %s", url), err),
		URL:       url,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// baser is satisfied by *BaseError and by every error that embeds it
type baser interface {
	base() *BaseError
}

func (e *BaseError) base() *BaseError { return e }

// TypeOf returns the ErrorType of the first taxonomy error in the chain
func TypeOf(err error) (ErrorType, bool) {
	for err != nil {
		if b, ok := err.(baser); ok {
			return b.base().Type, true
		}
		wrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = wrapped.Unwrap()
	}
	return "", false
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	t, ok := TypeOf(err)
	return ok && t == errType
}

// IsNotFound checks if an error is a profile-not-found error
func IsNotFound(err error) bool {
	for err != nil {
		if _, ok := err.(*ErrProfileNotFound); ok {
			return true
		}
		wrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = wrapped.Unwrap()
	}
	return false
}
