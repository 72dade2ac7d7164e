package passports

import (
	"net/http"

	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Passports, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.PassportsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.PassportCreate, h.handleCreateGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.PassportCreate, h.handleCreatePost)
	mux.HandleFunc(http.MethodGet+" "+routepath.PassportPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.PassportEditPattern, h.handleEditGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.PassportEditPattern, h.handleEditPost)
	mux.HandleFunc(http.MethodGet+" "+routepath.PassportDeletePattern, h.handleDeleteGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.PassportDeletePattern, h.handleDeletePost)
	mux.HandleFunc(http.MethodGet+" "+routepath.PassportsPrefix+"{rest...}", h.WriteNotFound)
}
