package users

import (
	"net/http"

	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Users, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersPrefix+"{rest...}", h.WriteNotFound)
}
