package passports

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

func passportKey(p apiclient.Passport) string {
	return strconv.FormatInt(p.ID, 10)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// deleteURL links to the confirmation page, carrying where to go after the
// passport is gone.
func deleteURL(p apiclient.Passport, returnTo string) string {
	target := routepath.PassportDelete(passportKey(p))
	if returnTo == "" {
		return target
	}
	return target + "?" + url.Values{routepath.PassportReturnToField: {returnTo}}.Encode()
}

func indexView(loc webtemplates.Localizer, page paging.PaginatedData[apiclient.Passport], params paging.Params) templ.Component {
	listURL := paging.URL(routepath.Passports, params)
	columns := []webtemplates.Column[apiclient.Passport]{
		webtemplates.FieldColumn("name", webtemplates.T(loc, "passports.field.name"), func(p apiclient.Passport) string { return p.Name }),
		webtemplates.FieldColumn("model", webtemplates.T(loc, "passports.field.model"), func(p apiclient.Passport) string { return p.Model }),
		webtemplates.FieldColumn("serialPrefix", webtemplates.T(loc, "passports.field.serial_prefix"), func(p apiclient.Passport) string { return p.SerialPrefix }),
		webtemplates.FieldColumn("fromSerialNumber", webtemplates.T(loc, "passports.field.from_serial"), func(p apiclient.Passport) string { return formatInt(p.FromSerialNumber) }),
		webtemplates.FieldColumn("toSerialNumber", webtemplates.T(loc, "passports.field.to_serial"), func(p apiclient.Passport) string { return formatInt(p.ToSerialNumber) }),
		webtemplates.FieldColumn("warrantyMonths", webtemplates.T(loc, "passports.field.warranty_months"), func(p apiclient.Passport) string { return formatInt(p.WarrantyMonths) }),
		webtemplates.ActionsColumn(webtemplates.T(loc, "passports.column.actions"), func(p apiclient.Passport) templ.Component {
			return webtemplates.Join(
				webtemplates.LinkButton(webtemplates.T(loc, "passports.action.edit"), routepath.PassportEdit(passportKey(p)), "small"),
				webtemplates.LinkButton(webtemplates.T(loc, "passports.action.delete"), deleteURL(p, listURL), "small danger"),
			)
		}),
	}
	return webtemplates.Join(
		webtemplates.PageHeader(
			webtemplates.T(loc, "passports.title"),
			webtemplates.LinkButton(webtemplates.T(loc, "passports.new"), routepath.PassportCreate, "primary"),
		),
		webtemplates.PaginatedTable(webtemplates.TableView[apiclient.Passport]{
			Data:       page,
			Columns:    columns,
			Params:     params,
			BasePath:   routepath.Passports,
			RowLink:    func(p apiclient.Passport) string { return routepath.Passport(passportKey(p)) },
			Searchable: true,
			Loc:        loc,
		}),
	)
}

func detailView(loc webtemplates.Localizer, p apiclient.Passport) templ.Component {
	return webtemplates.Join(
		webtemplates.PageHeader(
			p.Name,
			webtemplates.LinkButton(webtemplates.T(loc, "passports.action.edit"), routepath.PassportEdit(passportKey(p)), "primary"),
			webtemplates.LinkButton(webtemplates.T(loc, "passports.action.delete"), deleteURL(p, ""), "danger"),
		),
		webtemplates.DescriptionList([]webtemplates.DescriptionItem{
			{Term: webtemplates.T(loc, "passports.field.name"), Value: p.Name},
			{Term: webtemplates.T(loc, "passports.field.model"), Value: p.Model},
			{Term: webtemplates.T(loc, "passports.field.serial_prefix"), Value: p.SerialPrefix},
			{Term: webtemplates.T(loc, "passports.field.from_serial"), Value: formatInt(p.FromSerialNumber)},
			{Term: webtemplates.T(loc, "passports.field.to_serial"), Value: formatInt(p.ToSerialNumber)},
			{Term: webtemplates.T(loc, "passports.field.warranty_months"), Value: formatInt(p.WarrantyMonths)},
		}),
		webtemplates.LinkButton(webtemplates.T(loc, "passports.action.back"), routepath.Passports, ""),
	)
}

func createView(loc webtemplates.Localizer, state formState) templ.Component {
	return webtemplates.Join(
		webtemplates.PageHeader(webtemplates.T(loc, "passports.create.title")),
		webtemplates.Form(webtemplates.FormOptions{
			Action:       routepath.PassportCreate,
			SubmitToken:  state.token,
			ErrorMessage: state.message,
			CancelURL:    routepath.Passports,
			Loc:          loc,
		}, state.form.fields(loc, state.errs)...),
	)
}

func editView(loc webtemplates.Localizer, id int64, state formState) templ.Component {
	key := formatInt(id)
	return webtemplates.Join(
		webtemplates.PageHeader(webtemplates.T(loc, "passports.edit.title")),
		webtemplates.Form(webtemplates.FormOptions{
			Action:       routepath.PassportEdit(key),
			SubmitToken:  state.token,
			ErrorMessage: state.message,
			CancelURL:    routepath.Passport(key),
			Loc:          loc,
		}, state.form.fields(loc, state.errs)...),
	)
}

func deleteView(loc webtemplates.Localizer, p apiclient.Passport, state deleteState) templ.Component {
	hidden := map[string]string{routepath.PassportConfirmField: routepath.PassportConfirmedValue}
	cancel := routepath.Passport(passportKey(p))
	if state.returnTo != "" {
		hidden[routepath.PassportReturnToField] = state.returnTo
		cancel = state.returnTo
	}
	return webtemplates.Join(
		webtemplates.PageHeader(webtemplates.T(loc, "passports.delete.title")),
		webtemplates.Paragraph(webtemplates.T(loc, "passports.delete.confirm", p.Name), "confirm-message"),
		webtemplates.Form(webtemplates.FormOptions{
			Action:       routepath.PassportDelete(passportKey(p)),
			SubmitToken:  state.token,
			SubmitLabel:  webtemplates.T(loc, "passports.delete.submit"),
			SubmitClass:  "button danger",
			ErrorMessage: state.message,
			CancelURL:    cancel,
			Hidden:       hidden,
			Loc:          loc,
		}),
	)
}
