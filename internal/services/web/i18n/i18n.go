// Package i18n resolves the request language and prints catalog messages.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tuvarna/passport-admin/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam selects a language for the current request and persists it.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "pa_lang"
)

var (
	supported = []language.Tag{language.MustParse("bg-BG"), language.MustParse("en-US")}
	matcher   = language.NewMatcher(supported)
)

func init() {
	// Importing catalog registers every message with x/text.
	_ = catalog.Default()
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag      string
	LabelKey string
	URL      string
	Active   bool
}

// Supported lists the languages the UI is translated into.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the language used when nothing else matches.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag maps a user-supplied tag onto a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// ResolveTag picks the request language: lang query param, then cookie,
// then Accept-Language, then Default. The bool reports whether the choice
// came from the query param and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if r.URL != nil {
		if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, idx, conf := matcher.Match(tags...); conf != language.No {
				return supported[idx], false
			}
		}
	}
	return Default(), false
}

// SetLanguageCookie persists tag for one year.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageURL returns path and query with the lang param replaced.
func LanguageURL(path, rawQuery, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageOptions builds the switcher entries for the current request.
func LanguageOptions(r *http.Request, active language.Tag) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	out := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		base, _ := tag.Base()
		out = append(out, LanguageOption{
			Tag:      tag.String(),
			LabelKey: "core.lang." + base.String(),
			URL:      LanguageURL(path, rawQuery, tag.String()),
			Active:   tag == active,
		})
	}
	return out
}

// ResolveLocalizer resolves the request language, persists an explicit
// choice, and returns a printer for it.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag
}
