package errors

import (
	"fmt"
)

// ErrorCategory classifies a payment error for handling decisions.
type ErrorCategory string

const (
	CategoryDeclined       ErrorCategory = "declined"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategorySystemError    ErrorCategory = "system_error"
	CategoryNetworkError   ErrorCategory = "network_error"
)

// PaymentError represents a failed gateway call with enough context for the
// caller to decide what to do next. IsRetriable is advisory only: the client
// itself never retries, since payment submissions are not idempotent.
type PaymentError struct {
	Code        string // gateway HTTP status code, "" for transport failures
	Message     string // custom status message extracted from the reply
	Category    ErrorCategory
	IsRetriable bool
	Err         error // underlying transport error, if any
}

func (e *PaymentError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new payment error.
func NewPaymentError(code, message string, category ErrorCategory, retriable bool) *PaymentError {
	return &PaymentError{
		Code:        code,
		Message:     message,
		Category:    category,
		IsRetriable: retriable,
	}
}

// WithCause attaches the underlying error and returns the receiver.
func (e *PaymentError) WithCause(err error) *PaymentError {
	e.Err = err
	return e
}
