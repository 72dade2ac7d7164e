// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root            = "/"
	Login           = "/login"
	Register        = "/register"
	Logout          = "/logout"
	Health          = "/up"
	StaticPrefix    = "/static/"
	Dashboard       = "/dashboard"
	DashboardPrefix = "/dashboard/"

	Passports              = "/passports"
	PassportsPrefix        = "/passports/"
	PassportCreate         = "/passports/create"
	PassportPattern        = PassportsPrefix + "{passportID}"
	PassportEditPattern    = PassportsPrefix + "{passportID}/edit"
	PassportDeletePattern  = PassportsPrefix + "{passportID}/delete"
	PassportIDPathValue    = "passportID"
	PassportReturnToField  = "return_to"
	PassportConfirmField   = "confirm"
	PassportConfirmedValue = "yes"

	Users       = "/users"
	UsersPrefix = "/users/"

	// NextQueryKey carries the originally requested location through login.
	NextQueryKey = "next"
)

// Passport returns the passport details route.
func Passport(passportID string) string {
	return PassportsPrefix + escapeSegment(passportID)
}

// PassportEdit returns the passport edit route.
func PassportEdit(passportID string) string {
	return Passport(passportID) + "/edit"
}

// PassportDelete returns the passport delete confirmation route.
func PassportDelete(passportID string) string {
	return Passport(passportID) + "/delete"
}

// LoginWithNext returns the login route preserving the requested location.
func LoginWithNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || SafeLocalPath(next, "") == "" || next == Root {
		return Login
	}
	return Login + "?" + url.Values{NextQueryKey: {next}}.Encode()
}

// SafeLocalPath returns raw when it is a same-site absolute path (with
// optional query), otherwise fallback. Scheme-relative and external URLs are
// rejected so redirects never leave the app.
func SafeLocalPath(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return fallback
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" || parsed.Path == "" {
		return fallback
	}
	if parsed.RawQuery != "" {
		return parsed.Path + "?" + parsed.RawQuery
	}
	return parsed.Path
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
