package validation

import (
	"strings"
	"testing"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
)

func TestTextRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		min     int
		max     int
		wantKey string
	}{
		{name: "ok", value: "Model X", min: 1, max: 255},
		{name: "trimmed empty is required", value: "   ", min: 1, max: 255, wantKey: KeyRequired},
		{name: "too short", value: "abc", min: 5, max: 0, wantKey: KeyMinLength},
		{name: "too long", value: strings.Repeat("я", 51), min: 1, max: 50, wantKey: KeyMaxLength},
		{name: "multibyte counted as characters", value: strings.Repeat("я", 50), min: 1, max: 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			v.Text("name", tc.value, tc.min, tc.max)
			fe, failed := v.Errors().Get("name")
			if tc.wantKey == "" {
				if failed {
					t.Fatalf("unexpected error %+v", fe)
				}
				return
			}
			if !failed || fe.Key != tc.wantKey {
				t.Fatalf("error = %+v, want key %q", fe, tc.wantKey)
			}
		})
	}
}

func TestNonNegativeInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    int64
		wantKey string
	}{
		{value: "0", want: 0},
		{value: " 42 ", want: 42},
		{value: "", wantKey: KeyRequired},
		{value: "-1", wantKey: KeyNonNegativeInteger},
		{value: "1.5", wantKey: KeyNonNegativeInteger},
		{value: "ten", wantKey: KeyNonNegativeInteger},
	}
	for _, tc := range tests {
		v := New()
		got := v.NonNegativeInt("n", tc.value)
		fe, failed := v.Errors().Get("n")
		if tc.wantKey != "" {
			if !failed || fe.Key != tc.wantKey {
				t.Fatalf("NonNegativeInt(%q) error = %+v, want %q", tc.value, fe, tc.wantKey)
			}
			continue
		}
		if failed || got != tc.want {
			t.Fatalf("NonNegativeInt(%q) = %d (%+v), want %d", tc.value, got, fe, tc.want)
		}
	}
}

func TestEmailAndDate(t *testing.T) {
	t.Parallel()

	v := New()
	v.Email("ok", "ivan@example.bg")
	v.Email("display", "Ivan <ivan@example.bg>")
	v.Email("nodomain", "ivan@localhost")
	v.Email("empty", "")
	v.Date("date_ok", "2024-02-29")
	v.Date("date_bad", "29.02.2024")

	errs := v.Errors()
	if errs.Has("ok") || errs.Has("date_ok") {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	for field, key := range map[string]string{
		"display":  KeyEmail,
		"nodomain": KeyEmail,
		"empty":    KeyRequired,
		"date_bad": KeyDate,
	} {
		if fe, _ := errs.Get(field); fe.Key != key {
			t.Fatalf("%s key = %q, want %q", field, fe.Key, key)
		}
	}
}

func TestFirstErrorPerFieldWins(t *testing.T) {
	t.Parallel()

	v := New()
	v.Add("to", "first")
	v.Add("to", "second")
	if fe, _ := v.Errors().Get("to"); fe.Key != "first" {
		t.Fatalf("key = %q, want first", fe.Key)
	}
}

func TestErrIsInvalidInput(t *testing.T) {
	t.Parallel()

	v := New()
	if err := v.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
	v.Secret("password", "abc", 4)
	if !apperrors.Is(v.Err(), apperrors.KindInvalidInput) {
		t.Fatalf("Err() kind = %q", apperrors.KindOf(v.Err()))
	}
}
