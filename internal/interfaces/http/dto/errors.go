package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeTokenRevoked is used when the auth token has been blacklisted
	ErrCodeTokenRevoked = "ERR_TOKEN_REVOKED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when a conditioned write loses a race
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
}

// DomainErrorHTTPStatus maps business rule codes raised by the domain layer
// to HTTP status codes. State conflicts map to 409; everything the client
// sent correctly but the business rejects maps to 422.
var DomainErrorHTTPStatus = map[string]int{
	"NOT_FOUND":     http.StatusNotFound,
	"UNAUTHORIZED":  http.StatusUnauthorized,
	"FORBIDDEN":     http.StatusForbidden,
	"INVALID_INPUT": http.StatusBadRequest,

	// Races and state conflicts
	"ILLEGAL_TRANSITION":   http.StatusConflict,
	"ALREADY_RATED":        http.StatusConflict,
	"ADDRESS_IN_USE":       http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusConflict,

	// Business rule rejections
	"EMPTY_CART":            http.StatusUnprocessableEntity,
	"QUANTITY_OUT_OF_RANGE": http.StatusUnprocessableEntity,
	"ORDER_NOT_DELIVERED":   http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE":   http.StatusUnprocessableEntity,
	"INVALID_RATING":        http.StatusUnprocessableEntity,
	"INVALID_PRODUCT":       http.StatusUnprocessableEntity,
	"INVALID_PRICE":         http.StatusUnprocessableEntity,
	"INVALID_ADDRESS":       http.StatusUnprocessableEntity,
	"INVALID_CUSTOMER":      http.StatusUnprocessableEntity,
	"INVALID_NAME":          http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if status, ok := DomainErrorHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetDomainHTTPStatus returns the HTTP status for a domain error code.
// Unknown business codes default to 422 rather than 500: the request was
// well formed, the business said no.
func GetDomainHTTPStatus(code string) int {
	if status, ok := DomainErrorHTTPStatus[code]; ok {
		return status
	}
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
