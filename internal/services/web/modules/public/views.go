package public

import (
	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

func loginView(loc webtemplates.Localizer, state loginState) templ.Component {
	hidden := map[string]string{}
	if state.form.Next != "" {
		hidden[routepath.NextQueryKey] = state.form.Next
	}
	return webtemplates.Join(
		webtemplates.PageHeader(webtemplates.T(loc, "auth.login.title")),
		webtemplates.Form(webtemplates.FormOptions{
			Action:       routepath.Login,
			SubmitToken:  state.token,
			SubmitLabel:  webtemplates.T(loc, "auth.login.submit"),
			ErrorMessage: state.message,
			Hidden:       hidden,
			Loc:          loc,
		}, state.form.fields(loc, state.errs)...),
		switchPrompt(loc, "auth.login.register_prompt", "auth.login.register_link", routepath.Register),
	)
}

func registerView(loc webtemplates.Localizer, state registerState) templ.Component {
	return webtemplates.Join(
		webtemplates.PageHeader(webtemplates.T(loc, "auth.register.title")),
		webtemplates.Form(webtemplates.FormOptions{
			Action:       routepath.Register,
			SubmitToken:  state.token,
			SubmitLabel:  webtemplates.T(loc, "auth.register.submit"),
			ErrorMessage: state.message,
			Loc:          loc,
		}, state.form.fields(loc, state.errs)...),
		switchPrompt(loc, "auth.register.login_prompt", "auth.register.login_link", routepath.Login),
	)
}

func switchPrompt(loc webtemplates.Localizer, promptKey, linkKey, href string) templ.Component {
	return webtemplates.Join(
		webtemplates.Paragraph(webtemplates.T(loc, promptKey), "auth-switch"),
		webtemplates.LinkButton(webtemplates.T(loc, linkKey), href, "link"),
	)
}
