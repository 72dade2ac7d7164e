// Package flash carries one-time notices across a redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
)

// CookieName is the cookie used for one-time notices.
const CookieName = "pa_flash"

// Kind selects how a notice is presented.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice references a catalog message shown once on the next page.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// Success builds a success notice.
func Success(key string) Notice { return Notice{Kind: KindSuccess, Key: key} }

// Info builds an informational notice.
func Info(key string) Notice { return Notice{Kind: KindInfo, Key: key} }

// Writer stores and consumes notices using one scheme policy.
type Writer struct {
	Policy requestmeta.SchemePolicy
}

// Write stores n for the next page render. Invalid notices are dropped.
func (fw Writer) Write(w http.ResponseWriter, r *http.Request, n Notice) {
	if w == nil {
		return
	}
	n, ok := n.normalize()
	if !ok {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	cookie := fw.cookie(r)
	cookie.Value = base64.RawURLEncoding.EncodeToString(payload)
	http.SetCookie(w, cookie)
}

// ReadAndClear returns the pending notice and expires the cookie.
func (fw Writer) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	raw, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		cookie := fw.cookie(r)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
	return decode(raw.Value)
}

func (fw Writer) cookie(r *http.Request) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   fw.Policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
}

func decode(raw string) (Notice, bool) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil || len(data) == 0 {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return Notice{}, false
	}
	return n.normalize()
}

func (n Notice) normalize() (Notice, bool) {
	n.Key = strings.TrimSpace(n.Key)
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	if n.Key == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return n, true
	}
	return Notice{}, false
}
