// Package pagerender centralizes page rendering for full-page and HTMX flows.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/tuvarna/passport-admin/internal/services/web/i18n"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	flashnotice "github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

// RequestResolver resolves viewer state and pending notices for a request.
// This decouples platform rendering from the module handler bases.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
	ResolveRequestSignedIn(r *http.Request) bool
	FlashWriter() flashnotice.Writer
}

// Page describes one page response.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// Layout selects the document shell.
type Layout int

const (
	LayoutApp Layout = iota
	LayoutAuth
)

// PageContext builds the layout context for r. Full-page requests consume
// the pending flash notice; HTMX swaps leave it for the next full render.
func PageContext(w http.ResponseWriter, r *http.Request, resolver RequestResolver) webtemplates.PageContext {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	page := webtemplates.PageContext{
		Lang:      tag.String(),
		Loc:       loc,
		Languages: webi18n.LanguageOptions(r, tag),
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	if resolver == nil {
		return page
	}
	page.SignedIn = resolver.ResolveRequestSignedIn(r)
	page.ViewerName = strings.TrimSpace(resolver.ResolveRequestViewer(r).DisplayName)
	if !httpx.IsHTMXRequest(r) {
		page.Toast = resolveFlashToast(w, r, resolver.FlashWriter(), loc)
	}
	return page
}

// WritePage renders page inside layout. HTMX requests receive only the main
// content region.
func WritePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, layout Layout, page Page) error {
	if w == nil {
		return nil
	}
	ctx := PageContext(w, r, resolver)
	return Render(w, r, ctx, layout, page)
}

// Render writes page using an already resolved layout context.
func Render(w http.ResponseWriter, r *http.Request, ctx webtemplates.PageContext, layout Layout, page Page) error {
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	var shell templ.Component
	switch {
	case httpx.IsHTMXRequest(r):
		shell = webtemplates.MainContent(page.Title, ctx)
	case layout == LayoutAuth:
		shell = webtemplates.AuthLayout(page.Title, ctx)
	default:
		shell = webtemplates.AppLayout(page.Title, ctx)
	}

	var buf bytes.Buffer
	if err := shell.Render(templ.WithChildren(httpx.RequestContext(r), fragment), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if httpx.IsHTMXRequest(r) {
		w.Header().Add("Vary", "HX-Request")
	}
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, fw flashnotice.Writer, loc webtemplates.Localizer) *webtemplates.AppToast {
	notice, ok := fw.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		message = notice.Key
	}
	return &webtemplates.AppToast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
