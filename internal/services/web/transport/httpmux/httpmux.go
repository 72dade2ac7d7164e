// Package httpmux mounts shared routes on the root mux.
package httpmux

import (
	"io/fs"
	"net/http"

	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

// MountStatic wires the shared static route into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if withStaticMime != nil {
		staticHandler = withStaticMime(staticHandler)
	}
	rootMux.Handle("GET "+routepath.StaticPrefix, staticHandler)
}
