// Package sessioncookie reads and writes the opaque web session cookie.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
)

// Name is the cookie holding the server-side session id.
const Name = "pa_session"

// Read returns the trimmed session id when the cookie is present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// New builds the session cookie for sessionID. A zero expires yields a
// browser-session cookie.
func New(r *http.Request, sessionID string, expires time.Time, policy requestmeta.SchemePolicy) *http.Cookie {
	cookie := base(r, policy)
	cookie.Value = strings.TrimSpace(sessionID)
	if !expires.IsZero() {
		cookie.Expires = expires.UTC()
	}
	return cookie
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	cookie := base(r, policy)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func base(r *http.Request, policy requestmeta.SchemePolicy) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
}
