package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors carry their own codes;
// these cover failures raised before any service runs.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeBodyTooLarge = "BODY_TOO_LARGE"
	ErrCodeSiteRequired = "SITE_REQUIRED"
	ErrCodeSiteSuspended = "SITE_SUSPENDED"
)

// ErrorCodeHTTPStatus maps domain and transport error codes to HTTP
// status codes. Codes absent from the map fall back by prefix in
// GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	// Transport errors
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
	ErrCodeBodyTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeSiteRequired:  http.StatusBadRequest,
	ErrCodeSiteSuspended: http.StatusForbidden,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"USER_NOT_FOUND":      http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_BARCODE":    http.StatusConflict,
	"DUPLICATE_LINE":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"PROTECTED_DELETE":     http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"QUOTA_EXCEEDED":  http.StatusUnprocessableEntity,
	"LAST_SITE_ADMIN": http.StatusUnprocessableEntity,
	"INVALID_STATE":   http.StatusUnprocessableEntity,
	"EMPTY_SALE":      http.StatusUnprocessableEntity,
	"EMPTY_ORDER":     http.StatusUnprocessableEntity,
	"CUG_EXHAUSTED":   http.StatusUnprocessableEntity,
	"UNKNOWN_PLAN":    http.StatusUnprocessableEntity,

	// Infrastructure
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped codes fall back on their prefix: INVALID_* inputs are 400,
// ALREADY_* state transitions are 422, everything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "ALREADY_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
