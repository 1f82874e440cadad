// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Errors that abort a run.
var (
	ErrTooManySegments = errors.New("too many pieces in name")
	ErrMalformedSuffix = errors.New("unexpected CFS area suffix")
	ErrUnresolvable    = errors.New("no results")
	ErrMissingKey      = errors.New("missing geocoding API key")
)

// RowError ties a failure to the input row that caused it.
type RowError struct {
	Code   string
	Pieces []string
	State  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %s: %v: %q in %s", e.Code, e.Err, e.Pieces, e.State)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// GeocodingError represents a failure reported by the geocoding provider.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding errors.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit too many requests per second.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded daily quota exhausted or key denied.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout connection or response timeout.
	ErrorTypeTimeout
	// ErrorTypeInvalidRequest the provider rejected the query.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError provider unreachable or unavailable.
	ErrorTypeNetworkError
)

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

func isErrorType(err error, t ErrorType) bool {
	var geoErr *GeocodingError

	return errors.As(err, &geoErr) && geoErr.Type == t
}

// IsRateLimitError reports whether err was caused by request throttling.
func IsRateLimitError(err error) bool {
	if isErrorType(err, ErrorTypeRateLimit) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether err was caused by an exhausted quota
// or a denied key.
func IsQuotaExceededError(err error) bool {
	if isErrorType(err, ErrorTypeQuotaExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether err was caused by a timeout.
func IsTimeoutError(err error) bool {
	if isErrorType(err, ErrorTypeTimeout) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a non-200 HTTP status to a GeocodingError.
func ClassifyHTTPError(statusCode int) *GeocodingError {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden:
		return &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// ClassifyStatus maps a Geocoding API body status other than OK and
// ZERO_RESULTS to a GeocodingError.
func ClassifyStatus(status, message string) *GeocodingError {
	t := ErrorTypeUnknown

	switch status {
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "REQUEST_DENIED":
		t = ErrorTypeQuotaExceeded
	case "INVALID_REQUEST":
		t = ErrorTypeInvalidRequest
	}

	msg := "google maps status: " + status
	if message != "" {
		msg += " (" + message + ")"
	}

	return &GeocodingError{Type: t, Message: msg}
}
