// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
)

// Viewer is the signed-in user shown in the app chrome.
type Viewer struct {
	DisplayName string
	Email       string
}

// ResolveViewer resolves app chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveSignedIn reports whether the request carries a live session.
type ResolveSignedIn func(*http.Request) bool

// ResolveToken returns the API bearer token of the request's session.
type ResolveToken func(*http.Request) string

// ClearSession discards the request's session and expires its cookie.
type ClearSession func(http.ResponseWriter, *http.Request)

// Dependencies carries the request-scoped services shared by every module.
type Dependencies struct {
	ResolveViewer   ResolveViewer
	ResolveSignedIn ResolveSignedIn
	ResolveToken    ResolveToken
	ClearSession    ClearSession
	Flash           flash.Writer
	SubmitGuard     *submitguard.Guard
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
