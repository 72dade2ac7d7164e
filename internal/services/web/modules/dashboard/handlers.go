package dashboard

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

type dashboardService interface {
	loadDashboard(ctx context.Context, token, viewerName string) (DashboardView, error)
}

type handlers struct {
	modulehandler.Base
	service dashboardService
}

func newHandlers(s dashboardService, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadDashboard(r.Context(), h.RequestToken(r), h.ResolveRequestViewer(r).DisplayName)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "dashboard.title"), http.StatusOK, dashboardPage(loc, view))
}

func dashboardPage(loc webtemplates.Localizer, view DashboardView) templ.Component {
	heading := webtemplates.T(loc, "dashboard.title")
	if view.ViewerName != "" {
		heading = webtemplates.T(loc, "dashboard.welcome", view.ViewerName)
	}
	passportsCard := []templ.Component{
		webtemplates.Paragraph(webtemplates.T(loc, "dashboard.passports"), ""),
	}
	usersCard := []templ.Component{
		webtemplates.Paragraph(webtemplates.T(loc, "dashboard.users"), ""),
	}
	if view.ShowTotals {
		passportsCard = append(passportsCard, webtemplates.Paragraph(webtemplates.T(loc, "core.table.total", view.PassportTotal), "card-total"))
	}
	if view.ShowUsersTotal {
		usersCard = append(usersCard, webtemplates.Paragraph(webtemplates.T(loc, "core.table.total", view.UserTotal), "card-total"))
	}
	passportsCard = append(passportsCard, webtemplates.LinkButton(webtemplates.T(loc, "core.nav.passports"), routepath.Passports, "primary"))
	usersCard = append(usersCard, webtemplates.LinkButton(webtemplates.T(loc, "core.nav.users"), routepath.Users, ""))
	return webtemplates.Join(
		webtemplates.PageHeader(heading),
		webtemplates.Card("dashboard-passports", passportsCard...),
		webtemplates.Card("dashboard-users", usersCard...),
	)
}
