package public

import (
	"net/http"

	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/publichandler"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

// Option configures the public module.
type Option func(*Module)

// WithGateway sets the authentication gateway.
func WithGateway(g AuthGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithSessions sets the session manager that signs browsers in and out.
func WithSessions(s SessionManager) Option {
	return func(m *Module) { m.sessions = s }
}

// WithBase sets the handler base for public routes.
func WithBase(b publichandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides unauthenticated root and auth routes.
type Module struct {
	gateway  AuthGateway
	sessions SessionManager
	base     publichandler.Base
}

// New returns the public module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Healthy reports whether sign-in can reach the API.
func (m Module) Healthy() bool {
	if m.gateway == nil || m.sessions == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableAuthGateway)
	return !unavailable
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.sessions), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
