package users

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

type userService interface {
	list(ctx context.Context, token string, params paging.Params) (paging.PaginatedData[apiclient.User], error)
}

type handlers struct {
	modulehandler.Base
	service userService
}

func newHandlers(s userService, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	params := paging.FromURL(r.URL)
	page, err := h.service.list(r.Context(), h.RequestToken(r), params)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, webtemplates.T(loc, "users.title"), http.StatusOK, indexView(loc, page, params))
}

func indexView(loc webtemplates.Localizer, page paging.PaginatedData[apiclient.User], params paging.Params) templ.Component {
	column := func(key, labelKey string, value func(apiclient.User) string) webtemplates.Column[apiclient.User] {
		return webtemplates.FieldColumn(key, webtemplates.T(loc, labelKey), value)
	}
	return webtemplates.Join(
		webtemplates.PageHeader(webtemplates.T(loc, "users.title")),
		webtemplates.PaginatedTable(webtemplates.TableView[apiclient.User]{
			Data: page,
			Columns: []webtemplates.Column[apiclient.User]{
				column("fullName", "users.field.full_name", func(u apiclient.User) string { return u.FullName }),
				column("email", "users.field.email", func(u apiclient.User) string { return u.Email }),
				column("phone", "users.field.phone", func(u apiclient.User) string { return u.Phone }),
				column("address", "users.field.address", func(u apiclient.User) string { return u.Address }),
				column("role", "users.field.role", func(u apiclient.User) string { return u.Role }),
			},
			Params:     params,
			BasePath:   routepath.Users,
			Searchable: true,
			Loc:        loc,
		}),
	)
}
