// Package publichandler provides a shared base for unauthenticated web module handlers.
// It centralizes error handling, localization, and page rendering that would
// otherwise be duplicated across public modules.
package publichandler

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	webi18n "github.com/tuvarna/passport-admin/internal/services/web/i18n"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	flashnotice "github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/pagerender"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/weberror"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

// Base provides shared error handling and page rendering for public
// (unauthenticated) modules.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a public handler base. A missing submit guard gets a
// private one.
func NewBase(deps module.Dependencies) Base {
	if deps.SubmitGuard == nil {
		deps.SubmitGuard = submitguard.New(submitguard.DefaultRetention)
	}
	return Base{deps: deps}
}

// ResolveRequestViewer resolves viewer state for the request.
// Returns a zero Viewer when no resolver is configured.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.deps.ResolveViewer == nil {
		return module.Viewer{}
	}
	return b.deps.ResolveViewer(r)
}

// ResolveRequestSignedIn reports whether the current request is authenticated.
func (b Base) ResolveRequestSignedIn(r *http.Request) bool {
	if b.deps.ResolveSignedIn != nil {
		return b.deps.ResolveSignedIn(r)
	}
	return false
}

// FlashWriter returns the flash notice writer.
func (b Base) FlashWriter() flashnotice.Writer {
	return b.deps.Flash
}

// PageLocalizer resolves a localizer for the request.
func (Base) PageLocalizer(w http.ResponseWriter, r *http.Request) webtemplates.Localizer {
	loc, _ := webi18n.ResolveLocalizer(w, r)
	return loc
}

// WritePublicPage renders a page in the auth layout.
func (b Base) WritePublicPage(w http.ResponseWriter, r *http.Request, title string, statusCode int, body templ.Component) {
	if err := pagerender.WritePage(w, r, b, pagerender.LayoutAuth, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   body,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteNotFound renders a localized 404 page using the public layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, "", b, pagerender.LayoutAuth)
}

// WriteError renders a user-safe error page.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b, pagerender.LayoutAuth)
}

// WriteFlash stores a notice for the next full page render.
func (b Base) WriteFlash(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	b.deps.Flash.Write(w, r, notice)
}

// Redirect performs an HTMX-aware See Other redirect.
func (Base) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	httpx.WriteRedirect(w, r, location)
}

// IssueSubmitToken returns a fresh one-time form token.
func (b Base) IssueSubmitToken() string {
	return b.deps.SubmitGuard.Issue()
}

// Submit runs fn once for the form's submit token and writes the outcome
// cookies to w, for the first caller and for every duplicate or replay
// alike. It returns the location to navigate to.
func (b Base) Submit(w http.ResponseWriter, r *http.Request, fn func(context.Context) (submitguard.Outcome, error)) (string, error) {
	if r == nil {
		return "", submitguard.ErrMissingToken
	}
	outcome, err := b.deps.SubmitGuard.Submit(r.Context(), r.PostFormValue(submitguard.FieldName), fn)
	if err != nil {
		return "", err
	}
	outcome.Apply(w)
	return outcome.Location, nil
}

// FormErrorMessage localizes a failed submission for inline display.
func (Base) FormErrorMessage(loc webtemplates.Localizer, err error) string {
	return weberror.PublicMessage(loc, err)
}
