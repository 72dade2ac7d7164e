package passports

import (
	"strings"
	"testing"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/validation"
)

func TestPassportFormValidate(t *testing.T) {
	t.Parallel()

	valid := passportForm{
		Name: " Boiler X ", Model: "BX-200", SerialPrefix: "BX",
		FromSerialNumber: "10", ToSerialNumber: "10", WarrantyMonths: "0",
	}
	tests := []struct {
		name   string
		mutate func(*passportForm)
		field  string
		key    string
	}{
		{name: "valid equal bounds"},
		{name: "missing name", mutate: func(f *passportForm) { f.Name = "" }, field: fieldName, key: validation.KeyRequired},
		{name: "long model", mutate: func(f *passportForm) { f.Model = strings.Repeat("m", 256) }, field: fieldModel, key: validation.KeyMaxLength},
		{name: "long prefix", mutate: func(f *passportForm) { f.SerialPrefix = strings.Repeat("p", 51) }, field: fieldSerialPrefix, key: validation.KeyMaxLength},
		{name: "negative from", mutate: func(f *passportForm) { f.FromSerialNumber = "-1" }, field: fieldFromSerialNumber, key: validation.KeyNonNegativeInteger},
		{name: "fractional warranty", mutate: func(f *passportForm) { f.WarrantyMonths = "1.5" }, field: fieldWarrantyMonths, key: validation.KeyNonNegativeInteger},
		{name: "reversed range", mutate: func(f *passportForm) { f.ToSerialNumber = "9" }, field: fieldToSerialNumber, key: keyToBeforeFrom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			form := valid
			if tc.mutate != nil {
				tc.mutate(&form)
			}
			in, errs := form.validate()
			if tc.field == "" {
				if len(errs) != 0 {
					t.Fatalf("errors = %+v, want none", errs)
				}
				want := apiclient.PassportInput{Name: "Boiler X", Model: "BX-200", SerialPrefix: "BX", FromSerialNumber: 10, ToSerialNumber: 10}
				if in != want {
					t.Fatalf("input = %+v, want %+v", in, want)
				}
				return
			}
			fe, ok := errs.Get(tc.field)
			if !ok || fe.Key != tc.key {
				t.Fatalf("errors = %+v, want %s on %s", errs, tc.key, tc.field)
			}
		})
	}
}

func TestPassportFormRangeCheckWaitsForValidNumbers(t *testing.T) {
	t.Parallel()

	_, errs := passportForm{Name: "a", Model: "b", SerialPrefix: "c", FromSerialNumber: "x", ToSerialNumber: "1", WarrantyMonths: "1"}.validate()
	if errs.Has(fieldToSerialNumber) {
		t.Fatalf("errors = %+v, range must not be compared against an invalid bound", errs)
	}
}

func TestParsePassportID(t *testing.T) {
	t.Parallel()

	if id, err := parsePassportID(" 42 "); err != nil || id != 42 {
		t.Fatalf("parsePassportID() = %d, %v", id, err)
	}
	for _, raw := range []string{"", "0", "-3", "4x"} {
		if _, err := parsePassportID(raw); err == nil {
			t.Fatalf("parsePassportID(%q) expected error", raw)
		}
	}
}
