package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

const (
	appErrorTitleNotFoundKey  = "core.error.not_found_title"
	appErrorTitleServerErrKey = "core.error.title"
	appErrorNotFoundKey       = "core.error.not_found"
	appErrorGenericKey        = "core.error.generic"
	appErrorNetworkKey        = "core.error.network"
	appErrorUnavailableKey    = "core.error.unavailable"
	appErrorBackHomeKey       = "core.error.back_home"
)

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	if statusCode == http.StatusNotFound {
		return T(loc, appErrorTitleNotFoundKey)
	}
	return T(loc, appErrorTitleServerErrKey)
}

func appErrorMessage(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, appErrorNotFoundKey)
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return T(loc, appErrorNetworkKey)
	case http.StatusServiceUnavailable:
		return T(loc, appErrorUnavailableKey)
	}
	return T(loc, appErrorGenericKey)
}

// AppErrorState renders the error panel for statusCode. An empty message
// uses the status default; homeURL is the recovery link target.
func AppErrorState(statusCode int, message, homeURL string, loc Localizer) templ.Component {
	if homeURL == "" {
		homeURL = routepath.Root
	}
	if message == "" {
		message = appErrorMessage(statusCode, loc)
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<section class="error-state"`)
		hw.attr("data-status", http.StatusText(statusCode))
		hw.raw("><h1>")
		hw.text(AppErrorPageTitle(statusCode, loc))
		hw.raw("</h1><p>")
		hw.text(message)
		hw.raw(`</p><a class="button"`)
		hw.attr("href", homeURL)
		hw.raw(">")
		hw.text(T(loc, appErrorBackHomeKey))
		hw.raw("</a></section>")
		return hw.err
	})
}
