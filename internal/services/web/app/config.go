package app

import (
	"io/fs"

	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	StaticFS            fs.FS
}
