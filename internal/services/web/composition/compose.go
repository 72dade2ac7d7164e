// Package composition assembles the web root handler from principal
// resolvers and the module registry.
package composition

import (
	"io/fs"
	"net/http"

	webapp "github.com/tuvarna/passport-admin/internal/services/web/app"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/modules"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
)

// PrincipalResolvers carries request-scoped resolution callbacks built by the
// server from the session manager.
type PrincipalResolvers struct {
	AuthRequired    func(*http.Request) bool
	ResolveViewer   module.ResolveViewer
	ResolveSignedIn module.ResolveSignedIn
	ResolveToken    module.ResolveToken
	ClearSession    module.ClearSession
}

// ModuleRegistry builds web module sets from composition input.
type ModuleRegistry interface {
	Build(modules.Dependencies) modules.BuildOutput
}

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	Principal PrincipalResolvers

	ModuleDependencies modules.Dependencies

	RequestSchemePolicy requestmeta.SchemePolicy
	StaticFS            fs.FS

	Registry ModuleRegistry
}

// ComposeAppHandler builds the web app handler with the registry's modules.
// Every module shares one submit guard so a token is tracked exactly once.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	registry := input.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}

	deps := input.ModuleDependencies
	shared := deps.Shared
	shared.ResolveViewer = input.Principal.ResolveViewer
	shared.ResolveSignedIn = input.Principal.ResolveSignedIn
	shared.ResolveToken = input.Principal.ResolveToken
	shared.ClearSession = input.Principal.ClearSession
	shared.Flash = flash.Writer{Policy: input.RequestSchemePolicy}
	if shared.SubmitGuard == nil {
		shared.SubmitGuard = submitguard.New(submitguard.DefaultRetention)
	}
	deps.Shared = shared

	built := registry.Build(deps)

	return webapp.BuildRootHandler(webapp.Config{
		PublicModules:       built.Public,
		ProtectedModules:    built.Protected,
		RequestSchemePolicy: input.RequestSchemePolicy,
		StaticFS:            input.StaticFS,
	}, input.Principal.AuthRequired)
}
