package dto

import "net/http"

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	// ErrCodeUnauthenticated is used when authentication is required but missing/invalid
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	// ErrCodeUnauthorized is used when the caller lacks permission for the operation
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "INVALID_TOKEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// Settlement business rule error codes
const (
	// ErrCodeInvalidAmount is used when a transfer amount is not positive or malformed
	ErrCodeInvalidAmount = "INVALID_AMOUNT"
	// ErrCodeInvalidIBAN is used when a destination IBAN is invalid
	ErrCodeInvalidIBAN = "INVALID_IBAN"
	// ErrCodeInsufficientBalance is used when the commission balance cannot cover the request
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	// ErrCodeTenantInactive is used when the requesting tenant is inactive or suspended
	ErrCodeTenantInactive = "TENANT_INACTIVE"
	// ErrCodeInvalidStateTransition is used when a transfer is not in the expected state for the operation
	ErrCodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	// ErrCodeGatewayTimeout is used when the payment gateway did not answer in time
	ErrCodeGatewayTimeout = "GATEWAY_TIMEOUT"
	// ErrCodeGatewayRejected is used when the payment gateway refused the payout
	ErrCodeGatewayRejected = "GATEWAY_REJECTED"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthenticated: http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeUnauthorized:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Settlement business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidAmount:          http.StatusUnprocessableEntity,
	ErrCodeInvalidIBAN:            http.StatusUnprocessableEntity,
	ErrCodeInsufficientBalance:    http.StatusUnprocessableEntity,
	ErrCodeTenantInactive:         http.StatusUnprocessableEntity,
	ErrCodeInvalidStateTransition: http.StatusUnprocessableEntity,
	ErrCodeGatewayRejected:        http.StatusUnprocessableEntity,
	ErrCodeGatewayTimeout:         http.StatusGatewayTimeout,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Codes not present in the map fall through to 422: every remaining
// domain error code is a business rule violation.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
