// Package modules defines web module registry helpers.
package modules

import (
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/modules/public"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries what the registry needs to compose every module.
// A nil API client leaves each module on its unavailable gateway.
type Dependencies struct {
	// API is the remote passports API client shared by all gateways.
	API *apiclient.Client
	// Sessions signs browsers in and out for the public module.
	Sessions public.SessionManager
	// Shared carries the request-scoped resolvers, flash writer and submit
	// guard handed to every handler base.
	Shared module.Dependencies
}
