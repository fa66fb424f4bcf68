package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the wire shape of an API error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CustomError carries an error code and the HTTP status it maps to.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WrapError returns a copy of base carrying err as its cause.
func WrapError(base *CustomError, err error) *CustomError {
	return &CustomError{
		Code:    base.Code,
		Message: base.Message,
		Status:  base.Status,
		Err:     err,
	}
}

// ErrorCode extracts the code from a CustomError, or INTERNAL_ERROR.
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternalError
}

// ErrorStatus extracts the HTTP status from a CustomError, or 500.
func ErrorStatus(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err is a CustomError with the given code.
func IsCode(err error, code string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// ValidationError marks a request-validation failure.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Predefined error codes.
const (
	// Client errors (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// Server errors (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// Inference pipeline errors
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeUpstreamUnreachable = "UPSTREAM_UNREACHABLE"
	ErrCodeInvalidModelOutput  = "INVALID_MODEL_OUTPUT"
	ErrCodeConfigMissing       = "CONFIG_MISSING"
	ErrCodeQueueFull           = "QUEUE_FULL"
	ErrCodeCacheFull           = "CACHE_FULL"
)

// Predefined errors.
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	ErrInternalError  = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "gateway timeout", http.StatusGatewayTimeout, nil)

	// Inference pipeline errors. RateLimited means the retry budget against
	// the model endpoint was exhausted on throttling responses; Unreachable
	// means the endpoint could not be reached at all.
	ErrRateLimited         = NewError(ErrCodeRateLimited, "the recipe service is busy right now, please try again shortly", http.StatusServiceUnavailable, nil)
	ErrUpstreamUnreachable = NewError(ErrCodeUpstreamUnreachable, "the recipe service is unreachable", http.StatusBadGateway, nil)
	ErrInvalidModelOutput  = NewError(ErrCodeInvalidModelOutput, "the model returned an unusable answer", http.StatusBadGateway, nil)
	ErrConfigMissing       = NewError(ErrCodeConfigMissing, "product link configuration is missing", http.StatusServiceUnavailable, nil)

	ErrQueueFull = NewError(ErrCodeQueueFull, "request queue is full", http.StatusServiceUnavailable, nil)
	ErrCacheFull = NewError(ErrCodeCacheFull, "cache is full", http.StatusServiceUnavailable, nil)
)
