package public

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/validation"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

const (
	fieldUsername           = "username"
	fieldPassword           = "password"
	fieldFullName           = "fullName"
	fieldEmail              = "email"
	fieldPhone              = "phone"
	fieldAddress            = "address"
	fieldPurchaseDate       = "purchaseDate"
	fieldDeviceSerialNumber = "deviceSerialNumber"

	passwordMinLength = 4
	phoneMinLength    = 5
	addressMinLength  = 5
)

type loginForm struct {
	Username string
	Password string
	Next     string
}

func loginFormFromRequest(r *http.Request) loginForm {
	return loginForm{
		Username: r.PostFormValue(fieldUsername),
		Password: r.PostFormValue(fieldPassword),
		Next:     routepath.SafeLocalPath(r.PostFormValue(routepath.NextQueryKey), ""),
	}
}

func (f loginForm) validate() validation.Errors {
	v := validation.New()
	v.Text(fieldUsername, f.Username, 1, 0)
	v.Secret(fieldPassword, f.Password, passwordMinLength)
	return v.Errors()
}

// destination is where a successful sign-in lands.
func (f loginForm) destination() string {
	return routepath.SafeLocalPath(f.Next, routepath.Dashboard)
}

func (f loginForm) fields(loc webtemplates.Localizer, errs validation.Errors) []templ.Component {
	return []templ.Component{
		webtemplates.InputField(webtemplates.Field{
			Name: fieldUsername, Label: webtemplates.T(loc, "auth.login.username"), Type: "text",
			Value: f.Username, Required: true, Autocomplete: "username",
			Error: webtemplates.FieldErrorText(loc, errs, fieldUsername),
		}),
		webtemplates.InputField(webtemplates.Field{
			Name: fieldPassword, Label: webtemplates.T(loc, "auth.login.password"), Type: "password",
			Required: true, Autocomplete: "current-password",
			Error: webtemplates.FieldErrorText(loc, errs, fieldPassword),
		}),
	}
}

type registerForm struct {
	FullName           string
	Email              string
	Password           string
	Phone              string
	Address            string
	PurchaseDate       string
	DeviceSerialNumber string
}

func registerFormFromRequest(r *http.Request) registerForm {
	return registerForm{
		FullName:           r.PostFormValue(fieldFullName),
		Email:              r.PostFormValue(fieldEmail),
		Password:           r.PostFormValue(fieldPassword),
		Phone:              r.PostFormValue(fieldPhone),
		Address:            r.PostFormValue(fieldAddress),
		PurchaseDate:       r.PostFormValue(fieldPurchaseDate),
		DeviceSerialNumber: r.PostFormValue(fieldDeviceSerialNumber),
	}
}

func (f registerForm) validate() (apiclient.RegistrationRequest, validation.Errors) {
	v := validation.New()
	req := apiclient.RegistrationRequest{
		FullName:           v.Text(fieldFullName, f.FullName, 1, 0),
		Email:              v.Email(fieldEmail, f.Email),
		Password:           v.Secret(fieldPassword, f.Password, passwordMinLength),
		Phone:              v.Text(fieldPhone, f.Phone, phoneMinLength, 0),
		Address:            v.Text(fieldAddress, f.Address, addressMinLength, 0),
		DeviceSerialNumber: v.Text(fieldDeviceSerialNumber, f.DeviceSerialNumber, 1, 0),
	}
	if date := v.Date(fieldPurchaseDate, f.PurchaseDate); !date.IsZero() {
		req.PurchaseDate = date.Format(validation.DateLayout)
	}
	return req, v.Errors()
}

func (f registerForm) fields(loc webtemplates.Localizer, errs validation.Errors) []templ.Component {
	field := func(name, labelKey, inputType, value, autocomplete string) templ.Component {
		return webtemplates.InputField(webtemplates.Field{
			Name:         name,
			Label:        webtemplates.T(loc, labelKey),
			Type:         inputType,
			Value:        value,
			Required:     true,
			Autocomplete: autocomplete,
			Error:        webtemplates.FieldErrorText(loc, errs, name),
		})
	}
	return []templ.Component{
		field(fieldFullName, "auth.register.full_name", "text", f.FullName, "name"),
		field(fieldEmail, "auth.register.email", "email", f.Email, "email"),
		field(fieldPassword, "auth.register.password", "password", "", "new-password"),
		field(fieldPhone, "auth.register.phone", "tel", f.Phone, "tel"),
		field(fieldAddress, "auth.register.address", "text", f.Address, "street-address"),
		field(fieldPurchaseDate, "auth.register.purchase_date", "date", f.PurchaseDate, "off"),
		field(fieldDeviceSerialNumber, "auth.register.device_serial", "text", f.DeviceSerialNumber, "off"),
	}
}
