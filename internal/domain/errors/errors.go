// Package errors defines the storefront's application error taxonomy.
package errors

import (
	"net/http"

	"github.com/Benmwania/ecomart/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Session-related errors
	ErrLoginRequired = NewBaseError(
		http.StatusUnauthorized,
		"LOGIN_REQUIRED",
		"Please log in to continue",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Your session has expired, please log in again",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	// Cart-related errors
	ErrCartEmpty = NewBaseError(
		http.StatusConflict,
		"CART_EMPTY",
		"Your cart is empty",
		"",
	)

	ErrCartUnavailable = NewBaseError(
		http.StatusBadGateway,
		"CART_UNAVAILABLE",
		"Could not load your cart",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrOrderNotCancellable = NewBaseError(
		http.StatusConflict,
		"ORDER_NOT_CANCELLABLE",
		"This order can no longer be cancelled",
		"",
	)

	ErrInvalidStatusChange = NewBaseError(
		http.StatusConflict,
		"INVALID_STATUS_CHANGE",
		"The order cannot move to that status",
		"",
	)

	// Payment-related errors
	ErrUnsupportedPaymentMethod = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_PAYMENT_METHOD",
		"Unsupported payment method",
		"",
	)

	ErrInvalidPhoneNumber = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PHONE_NUMBER",
		"Please enter a valid Kenyan phone number",
		"",
	)

	ErrPaymentFailed = NewBaseError(
		http.StatusPaymentRequired,
		"PAYMENT_FAILED",
		"Payment failed. Please try again.",
		"",
	)

	ErrPaymentTimeout = NewBaseError(
		http.StatusPaymentRequired,
		"PAYMENT_TIMEOUT",
		"Payment confirmation timeout. Please check your M-Pesa messages.",
		"",
	)

	ErrPaymentNotReady = NewBaseError(
		http.StatusConflict,
		"PAYMENT_NOT_READY",
		"Payment has not been initialized yet",
		"",
	)

	// Seller-related errors
	ErrSellerOnly = NewBaseError(
		http.StatusForbidden,
		"SELLER_ONLY",
		"This area is only available to seller accounts",
		"",
	)

	ErrTooManyImages = NewBaseError(
		http.StatusBadRequest,
		"TOO_MANY_IMAGES",
		"A product can have at most 5 images",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrBackendUnavailable = NewBaseError(
		http.StatusBadGateway,
		"BACKEND_UNAVAILABLE",
		"The store is temporarily unavailable",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// BackendError represents a failure reported by the remote EcoMart API,
// implementing the AppError interface.
type BackendError struct {
	status  int
	message string
	details string
}

// NewBackendError creates an error from a backend response.
func NewBackendError(status int, message, details string) AppError {
	if message == "" {
		message = http.StatusText(status)
	}

	return &BackendError{status: status, message: message, details: details}
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BackendError) HTTPCode() int {
	return e.status
}

// ErrorCode returns the business error code
func (e *BackendError) ErrorCode() string {
	return "BACKEND_ERROR"
}

// Message returns the user-friendly error message
func (e *BackendError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BackendError) Details() string {
	return e.details
}
