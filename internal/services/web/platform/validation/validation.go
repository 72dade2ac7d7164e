// Package validation collects field-level form errors before any API call.
package validation

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
)

// Catalog keys for the built-in rules.
const (
	KeyRequired           = "core.validation.required"
	KeyMinLength          = "core.validation.min_length"
	KeyMaxLength          = "core.validation.max_length"
	KeyNonNegativeInteger = "core.validation.non_negative_integer"
	KeyEmail              = "core.validation.email"
	KeyDate               = "core.validation.date"
)

// DateLayout is the accepted date input format.
const DateLayout = "2006-01-02"

// FieldError is a localizable message attached to one form field.
type FieldError struct {
	Key  string
	Args []any
}

// Errors maps form field names to their first failure.
type Errors map[string]FieldError

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the failure recorded for field.
func (e Errors) Get(field string) (FieldError, bool) {
	fe, ok := e[field]
	return fe, ok
}

// Validator accumulates field errors. Only the first error per field is kept.
type Validator struct {
	errs Errors
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{errs: Errors{}}
}

// Add records a failure for field unless one is already present.
func (v *Validator) Add(field, key string, args ...any) {
	if v.errs.Has(field) {
		return
	}
	v.errs[field] = FieldError{Key: key, Args: args}
}

// Valid reports whether no field failed.
func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

// Errors returns the collected field errors.
func (v *Validator) Errors() Errors {
	return v.errs
}

// Err returns an InvalidInput error when any field failed, nil otherwise.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperrors.E(apperrors.KindInvalidInput, "form validation failed")
}

// Text trims value and checks its length in characters. minLen of 1 or more
// makes the field required; maxLen of 0 disables the upper bound.
func (v *Validator) Text(field, value string, minLen, maxLen int) string {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0 && minLen > 0:
		v.Add(field, KeyRequired)
	case n < minLen:
		v.Add(field, KeyMinLength, minLen)
	case maxLen > 0 && n > maxLen:
		v.Add(field, KeyMaxLength, maxLen)
	}
	return value
}

// Secret checks length like Text but keeps surrounding whitespace.
func (v *Validator) Secret(field, value string, minLen int) string {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		v.Add(field, KeyRequired)
	case n < minLen:
		v.Add(field, KeyMinLength, minLen)
	}
	return value
}

// NonNegativeInt parses value as a base-10 integer >= 0.
func (v *Validator) NonNegativeInt(field, value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, KeyRequired)
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		v.Add(field, KeyNonNegativeInteger)
		return 0
	}
	return n
}

// Email checks that value is a bare email address.
func (v *Validator) Email(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, KeyRequired)
		return value
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		v.Add(field, KeyEmail)
	}
	return value
}

// Date parses value using DateLayout.
func (v *Validator) Date(field, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, KeyRequired)
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		v.Add(field, KeyDate)
		return time.Time{}
	}
	return t
}
