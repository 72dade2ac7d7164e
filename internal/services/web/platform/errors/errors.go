// Package errors defines the typed failures shared by web handlers and the
// API client.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies a failure for HTTP mapping and user-facing recovery.
type Kind string

const (
	KindUnknown        Kind = "unknown"
	KindInvalidInput   Kind = "invalid_input"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindRequestFailed  Kind = "request_failed"
	KindNetworkFailure Kind = "network_failure"
	KindUnavailable    Kind = "unavailable"
)

// Error is a typed web application failure.
//
// Status and Code carry the remote API response for RequestFailed errors.
// Key is an optional catalog key for the user-facing message.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Status  int
	Code    string
	Err     error
}

// Error renders the message, falling back to the kind.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying cause.
func (e Error) Unwrap() error {
	return e.Err
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds a typed Error around cause.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Err: cause}
}

// RequestFailed builds the error for a non-2xx, non-401 API response.
func RequestFailed(status int, code, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = http.StatusText(status)
	}
	return Error{Kind: KindRequestFailed, Status: status, Code: strings.TrimSpace(code), Message: message}
}

// KindOf returns the kind of err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// Is reports whether err is a typed Error of kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsUnauthorized reports whether the session behind err must be discarded.
func IsUnauthorized(err error) bool {
	return Is(err, KindUnauthorized)
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// Status returns the remote API status code carried by err, or 0.
func Status(err error) int {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return 0
	}
	return appErr.Status
}

// HTTPStatus maps an error to the status code the web surface responds with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRequestFailed:
		if appErr.Status >= 400 && appErr.Status < 500 {
			return appErr.Status
		}
		return http.StatusBadGateway
	case KindNetworkFailure:
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
