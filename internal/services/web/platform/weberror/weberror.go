// Package weberror renders shared error responses for web modules.
package weberror

import (
	"errors"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/pagerender"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

const (
	requestFailedKey = "core.error.request_failed"
	networkKey       = "core.error.network"
	unavailableKey   = "core.error.unavailable"
	genericKey       = "core.error.generic"
)

// ShouldRenderAppError reports whether status uses the status default
// message rather than the error's public message.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Only messages
// that came from the API response are shown verbatim.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webtemplates.T(loc, key)); localized != "" {
			return localized
		}
	}
	var appErr apperrors.Error
	switch apperrors.KindOf(err) {
	case apperrors.KindRequestFailed:
		if errors.As(err, &appErr) && strings.TrimSpace(appErr.Message) != "" {
			return webtemplates.T(loc, requestFailedKey, appErr.Message)
		}
	case apperrors.KindNetworkFailure:
		return webtemplates.T(loc, networkKey)
	case apperrors.KindUnavailable:
		return webtemplates.T(loc, unavailableKey)
	}
	return webtemplates.T(loc, genericKey)
}

// WriteAppError writes a localized error page for full-page and HTMX
// requests. An empty message uses the status default.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, message string, resolver pagerender.RequestResolver, layout pagerender.Layout) {
	if w == nil {
		return
	}
	writeErrorPage(w, r, pagerender.PageContext(w, r, resolver), statusCode, message, layout)
}

// WriteModuleError maps err onto an error page. Server-side failures are
// logged with the request id.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, resolver pagerender.RequestResolver, layout pagerender.Layout) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError && r != nil {
		log.Printf("web error method=%s path=%s status=%d request_id=%s err=%v",
			r.Method, r.URL.Path, statusCode, httpx.RequestIDOf(r), err)
	}
	page := pagerender.PageContext(w, r, resolver)
	message := ""
	if !ShouldRenderAppError(statusCode) || apperrors.Is(err, apperrors.KindRequestFailed) {
		message = PublicMessage(page.Loc, err)
	}
	writeErrorPage(w, r, page, statusCode, message, layout)
}

func writeErrorPage(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, statusCode int, message string, layout pagerender.Layout) {
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	home := routepath.Dashboard
	if !page.SignedIn {
		home = routepath.Login
	}
	err := pagerender.Render(w, r, page, layout, pagerender.Page{
		Title:      webtemplates.AppErrorPageTitle(statusCode, page.Loc),
		StatusCode: statusCode,
		Fragment:   webtemplates.AppErrorState(statusCode, message, home, page.Loc),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}
