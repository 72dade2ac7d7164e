package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/tuvarna/passport-admin/internal/services/web/i18n"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
)

// MainContentID is the element HTMX navigation swaps.
const MainContentID = "main-content"

const (
	htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"
	appNameKey    = "core.app.title"
)

// Error responses carry full fragments (form errors, error pages), so htmx
// swaps them like successful ones.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[2345]..","swap":true}]}`

// AppToast is a one-time notice shown at the top of a page.
type AppToast struct {
	Kind    string
	Message string
}

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	SignedIn     bool
	ViewerName   string
	Languages    []webi18n.LanguageOption
	Toast        *AppToast
}

// ComposePageTitle appends the application name to title.
func ComposePageTitle(title, appName string) string {
	title = strings.TrimSpace(title)
	appName = strings.TrimSpace(appName)
	switch {
	case title == "":
		return appName
	case appName == "" || title == appName || strings.HasSuffix(title, " | "+appName):
		return title
	}
	return title + " | " + appName
}

type navItem struct {
	labelKey string
	href     string
	prefix   string
}

var appNav = []navItem{
	{labelKey: "core.nav.dashboard", href: routepath.Dashboard, prefix: routepath.Dashboard},
	{labelKey: "core.nav.passports", href: routepath.Passports, prefix: routepath.Passports},
	{labelKey: "core.nav.users", href: routepath.Users, prefix: routepath.Users},
}

func navActive(currentPath, prefix string) bool {
	return currentPath == prefix || strings.HasPrefix(currentPath, prefix+"/")
}

// AppLayout renders the signed-in document shell around the children in ctx.
func AppLayout(title string, page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		writeDocumentHead(hw, title, page)
		hw.raw(`<body class="app" hx-boost="true"`)
		hw.attr("hx-target", "#"+MainContentID)
		hw.raw(` hx-swap="innerHTML show:window:top">`)

		hw.raw(`<header class="app-header"><a class="brand"`)
		hw.attr("href", routepath.Dashboard)
		hw.raw(">")
		hw.text(T(page.Loc, appNameKey))
		hw.raw(`</a><nav class="app-nav"><ul>`)
		for _, item := range appNav {
			hw.raw("<li><a")
			hw.attr("href", item.href)
			if navActive(page.CurrentPath, item.prefix) {
				hw.raw(` aria-current="page"`)
			}
			hw.raw(">")
			hw.text(T(page.Loc, item.labelKey))
			hw.raw("</a></li>")
		}
		hw.raw("</ul></nav>")
		writeLanguageSwitch(hw, page)
		if page.SignedIn {
			hw.raw(`<form class="logout" method="post" hx-target="body"`)
			hw.attr("action", routepath.Logout)
			hw.raw(">")
			if name := strings.TrimSpace(page.ViewerName); name != "" {
				hw.raw(`<span class="viewer">`)
				hw.text(name)
				hw.raw("</span>")
			}
			hw.raw(`<button type="submit">`)
			hw.text(T(page.Loc, "core.nav.logout"))
			hw.raw("</button></form>")
		}
		hw.raw("</header>")

		writeToast(hw, page.Toast)
		hw.raw(`<main class="app-main"`)
		hw.attr("id", MainContentID)
		hw.raw(">")
		hw.component(ctx, templ.GetChildren(ctx))
		hw.raw("</main>")
		writeDocumentScripts(hw)
		hw.raw("</body></html>")
		return hw.err
	})
}

// AuthLayout renders the public document shell (login, registration,
// error pages for visitors).
func AuthLayout(title string, page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		writeDocumentHead(hw, title, page)
		hw.raw(`<body class="auth" hx-boost="true"`)
		hw.attr("hx-target", "#"+MainContentID)
		hw.raw(`><header class="auth-header"><span class="brand">`)
		hw.text(T(page.Loc, appNameKey))
		hw.raw("</span>")
		writeLanguageSwitch(hw, page)
		hw.raw("</header>")
		writeToast(hw, page.Toast)
		hw.raw(`<main class="auth-main"`)
		hw.attr("id", MainContentID)
		hw.raw(">")
		hw.component(ctx, templ.GetChildren(ctx))
		hw.raw("</main>")
		writeDocumentScripts(hw)
		hw.raw("</body></html>")
		return hw.err
	})
}

// MainContent renders only the swappable main region for HTMX requests. The
// title element lets HTMX update the document title.
func MainContent(title string, page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw("<title>")
		hw.text(ComposePageTitle(title, T(page.Loc, appNameKey)))
		hw.raw("</title>")
		writeToast(hw, page.Toast)
		hw.component(ctx, templ.GetChildren(ctx))
		return hw.err
	})
}

func writeDocumentHead(hw *htmlWriter, title string, page PageContext) {
	lang := strings.TrimSpace(page.Lang)
	if lang == "" {
		lang = webi18n.Default().String()
	}
	hw.raw("<!doctype html><html")
	hw.attr("lang", lang)
	hw.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
	hw.text(ComposePageTitle(title, T(page.Loc, appNameKey)))
	hw.raw(`</title><meta name="htmx-config"`)
	hw.attr("content", htmxConfig)
	hw.raw(`><link rel="stylesheet"`)
	hw.attr("href", routepath.StaticPrefix+"app.css")
	hw.raw("></head>")
}

func writeDocumentScripts(hw *htmlWriter) {
	hw.raw("<script defer")
	hw.attr("src", htmxScriptURL)
	hw.raw("></script><script defer")
	hw.attr("src", routepath.StaticPrefix+"app.js")
	hw.raw("></script>")
}

func writeLanguageSwitch(hw *htmlWriter, page PageContext) {
	if len(page.Languages) == 0 {
		return
	}
	hw.raw(`<nav class="language-switch"`)
	hw.attr("aria-label", T(page.Loc, "core.lang.label"))
	hw.raw(">")
	for _, option := range page.Languages {
		hw.raw(`<a hx-boost="false"`)
		hw.attr("href", option.URL)
		hw.attr("hreflang", option.Tag)
		if option.Active {
			hw.raw(` aria-current="true"`)
		}
		hw.raw(">")
		hw.text(T(page.Loc, option.LabelKey))
		hw.raw("</a>")
	}
	hw.raw("</nav>")
}

func writeToast(hw *htmlWriter, toast *AppToast) {
	if toast == nil || strings.TrimSpace(toast.Message) == "" {
		return
	}
	kind := strings.TrimSpace(toast.Kind)
	if kind == "" {
		kind = "info"
	}
	hw.raw(`<div role="status"`)
	hw.attr("class", "toast toast-"+kind)
	hw.raw(">")
	hw.text(toast.Message)
	hw.raw("</div>")
}
