// Package modulehandler provides a composable base for protected web module handlers.
//
// Protected modules share handler infrastructure for viewer and token
// resolution, localization, page rendering, submissions and error handling.
// This package extracts that shared scaffold so modules embed it rather than
// duplicating it.
package modulehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/tuvarna/passport-admin/internal/services/web/i18n"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	flashnotice "github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/pagerender"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/weberror"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

const sessionExpiredKey = "auth.notice.session_expired"

// Base carries the shared request-scoped resolvers used by protected module
// handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies. A missing submit
// guard gets a private one.
func NewBase(deps module.Dependencies) Base {
	if deps.SubmitGuard == nil {
		deps.SubmitGuard = submitguard.New(submitguard.DefaultRetention)
	}
	return Base{deps: deps}
}

// ResolveRequestViewer resolves app chrome viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.deps.ResolveViewer == nil {
		return module.Viewer{}
	}
	return b.deps.ResolveViewer(r)
}

// ResolveRequestSignedIn reports whether r carries a live session.
func (b Base) ResolveRequestSignedIn(r *http.Request) bool {
	if b.deps.ResolveSignedIn != nil {
		return b.deps.ResolveSignedIn(r)
	}
	return b.RequestToken(r) != ""
}

// FlashWriter returns the flash notice writer.
func (b Base) FlashWriter() flashnotice.Writer {
	return b.deps.Flash
}

// RequestToken returns the API bearer token of the request's session.
func (b Base) RequestToken(r *http.Request) string {
	if r == nil || b.deps.ResolveToken == nil {
		return ""
	}
	return strings.TrimSpace(b.deps.ResolveToken(r))
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	return loc, tag.String()
}

// WritePage renders a full module page (HTMX-aware) within the app shell.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WritePage(w, r, b, pagerender.LayoutApp, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response. An Unauthorized
// error means the API rejected the session token: the session is cleared
// and the browser is sent to login, keeping the requested location.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsUnauthorized(err) {
		b.RecoverUnauthorized(w, r)
		return
	}
	weberror.WriteModuleError(w, r, err, b, pagerender.LayoutApp)
}

// RecoverUnauthorized clears the session and redirects to login with the
// original location as next.
func (b Base) RecoverUnauthorized(w http.ResponseWriter, r *http.Request) {
	if b.deps.ClearSession != nil {
		b.deps.ClearSession(w, r)
	}
	b.deps.Flash.Write(w, r, flashnotice.Info(sessionExpiredKey))
	next := ""
	if r != nil && r.URL != nil {
		next = r.URL.RequestURI()
	}
	httpx.WriteRedirect(w, r, routepath.LoginWithNext(next))
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, "", b, pagerender.LayoutApp)
}

// WriteFlash stores a notice for the next full page render.
func (b Base) WriteFlash(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	b.deps.Flash.Write(w, r, notice)
}

// Redirect performs an HTMX-aware See Other redirect.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	httpx.WriteRedirect(w, r, location)
}

// IssueSubmitToken returns a fresh one-time form token.
func (b Base) IssueSubmitToken() string {
	return b.deps.SubmitGuard.Issue()
}

// Submit runs fn once for the form's submit token. fn returns the location
// to navigate to on success and must use the context it is given, which
// outlives the request so duplicates waiting on it are not cut short. A post
// without a token fails with an InvalidInput error keyed core.form.expired.
func (b Base) Submit(r *http.Request, fn func(context.Context) (string, error)) (string, error) {
	if r == nil {
		return "", submitguard.ErrMissingToken
	}
	outcome, err := b.deps.SubmitGuard.Submit(r.Context(), r.PostFormValue(submitguard.FieldName), func(ctx context.Context) (submitguard.Outcome, error) {
		location, err := fn(ctx)
		return submitguard.Outcome{Location: location}, err
	})
	return outcome.Location, err
}

// FormErrorMessage localizes a failed submission for inline display.
func (b Base) FormErrorMessage(loc webtemplates.Localizer, err error) string {
	return weberror.PublicMessage(loc, err)
}
