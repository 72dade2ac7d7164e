package dashboard

import (
	"net/http"

	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

// Option configures a dashboard module.
type Option func(*Module)

// WithGateway sets the dashboard summary gateway.
func WithGateway(g DashboardGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the handler base for authenticated routes.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides the authenticated landing page.
type Module struct {
	gateway DashboardGateway
	base    modulehandler.Base
}

// New returns a dashboard module. Without a gateway the page renders
// without record totals.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
