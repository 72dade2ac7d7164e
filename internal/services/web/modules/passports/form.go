package passports

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/validation"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

// Form field names.
const (
	fieldName             = "name"
	fieldModel            = "model"
	fieldSerialPrefix     = "serialPrefix"
	fieldFromSerialNumber = "fromSerialNumber"
	fieldToSerialNumber   = "toSerialNumber"
	fieldWarrantyMonths   = "warrantyMonths"
)

const (
	nameMaxLength         = 255
	modelMaxLength        = 255
	serialPrefixMaxLength = 50

	keyToBeforeFrom = "passports.validation.to_before_from"
)

// passportForm keeps the raw submitted values so a failed submission can
// be re-rendered exactly as entered.
type passportForm struct {
	Name             string
	Model            string
	SerialPrefix     string
	FromSerialNumber string
	ToSerialNumber   string
	WarrantyMonths   string
}

func passportFormFromRequest(r *http.Request) passportForm {
	return passportForm{
		Name:             r.PostFormValue(fieldName),
		Model:            r.PostFormValue(fieldModel),
		SerialPrefix:     r.PostFormValue(fieldSerialPrefix),
		FromSerialNumber: r.PostFormValue(fieldFromSerialNumber),
		ToSerialNumber:   r.PostFormValue(fieldToSerialNumber),
		WarrantyMonths:   r.PostFormValue(fieldWarrantyMonths),
	}
}

func passportFormFromPassport(p apiclient.Passport) passportForm {
	return passportForm{
		Name:             p.Name,
		Model:            p.Model,
		SerialPrefix:     p.SerialPrefix,
		FromSerialNumber: strconv.FormatInt(p.FromSerialNumber, 10),
		ToSerialNumber:   strconv.FormatInt(p.ToSerialNumber, 10),
		WarrantyMonths:   strconv.FormatInt(p.WarrantyMonths, 10),
	}
}

// validate checks the form and returns the API input. The range check only
// runs once both serial numbers parsed.
func (f passportForm) validate() (apiclient.PassportInput, validation.Errors) {
	v := validation.New()
	in := apiclient.PassportInput{
		Name:             v.Text(fieldName, f.Name, 1, nameMaxLength),
		Model:            v.Text(fieldModel, f.Model, 1, modelMaxLength),
		SerialPrefix:     v.Text(fieldSerialPrefix, f.SerialPrefix, 1, serialPrefixMaxLength),
		FromSerialNumber: v.NonNegativeInt(fieldFromSerialNumber, f.FromSerialNumber),
		ToSerialNumber:   v.NonNegativeInt(fieldToSerialNumber, f.ToSerialNumber),
		WarrantyMonths:   v.NonNegativeInt(fieldWarrantyMonths, f.WarrantyMonths),
	}
	errs := v.Errors()
	if !errs.Has(fieldFromSerialNumber) && !errs.Has(fieldToSerialNumber) && in.ToSerialNumber < in.FromSerialNumber {
		v.Add(fieldToSerialNumber, keyToBeforeFrom)
	}
	return in, v.Errors()
}

func (f passportForm) fields(loc webtemplates.Localizer, errs validation.Errors) []templ.Component {
	field := func(name, labelKey, value, inputType string) templ.Component {
		minValue := ""
		if inputType == "number" {
			minValue = "0"
		}
		return webtemplates.InputField(webtemplates.Field{
			Name:         name,
			Label:        webtemplates.T(loc, labelKey),
			Type:         inputType,
			Value:        value,
			Required:     true,
			Min:          minValue,
			Autocomplete: "off",
			Error:        webtemplates.FieldErrorText(loc, errs, name),
		})
	}
	return []templ.Component{
		field(fieldName, "passports.field.name", f.Name, "text"),
		field(fieldModel, "passports.field.model", f.Model, "text"),
		field(fieldSerialPrefix, "passports.field.serial_prefix", f.SerialPrefix, "text"),
		field(fieldFromSerialNumber, "passports.field.from_serial", f.FromSerialNumber, "number"),
		field(fieldToSerialNumber, "passports.field.to_serial", f.ToSerialNumber, "number"),
		field(fieldWarrantyMonths, "passports.field.warranty_months", f.WarrantyMonths, "number"),
	}
}
