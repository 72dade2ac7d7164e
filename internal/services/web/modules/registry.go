package modules

import (
	"github.com/tuvarna/passport-admin/internal/services/web/modules/dashboard"
	"github.com/tuvarna/passport-admin/internal/services/web/modules/passports"
	"github.com/tuvarna/passport-admin/internal/services/web/modules/public"
	"github.com/tuvarna/passport-admin/internal/services/web/modules/users"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/modulehandler"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/publichandler"
)

// DefaultPublicModules returns the unauthenticated web modules.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		public.New(
			public.WithGateway(public.NewAPIGateway(deps.API)),
			public.WithSessions(deps.Sessions),
			public.WithBase(publichandler.NewBase(deps.Shared)),
		),
	}
}

// DefaultProtectedModules returns the authenticated web modules. All of
// them share one handler base so submit tokens are tracked by one guard.
func DefaultProtectedModules(deps Dependencies) []Module {
	base := modulehandler.NewBase(deps.Shared)
	return []Module{
		dashboard.New(dashboard.WithGateway(dashboard.NewAPIGateway(deps.API)), dashboard.WithBase(base)),
		passports.New(passports.WithGateway(passports.NewAPIGateway(deps.API)), passports.WithBase(base)),
		users.New(users.WithGateway(users.NewAPIGateway(deps.API)), users.WithBase(base)),
	}
}

// BuildOutput groups the modules composed into the root handler.
type BuildOutput struct {
	Public    []Module
	Protected []Module
}

// Registry builds the default module sets.
type Registry struct{}

// NewRegistry returns the default module registry.
func NewRegistry() Registry {
	return Registry{}
}

// Build returns the public and protected modules wired to deps.
func (Registry) Build(deps Dependencies) BuildOutput {
	return BuildOutput{
		Public:    DefaultPublicModules(deps),
		Protected: DefaultProtectedModules(deps),
	}
}
