package web

import (
	"net/http"
	"strings"

	"github.com/tuvarna/passport-admin/internal/services/web/composition"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/session"
)

// principalSessions is the session surface needed to resolve the request
// principal.
type principalSessions interface {
	Current(*http.Request) (session.Session, bool)
	AuthToken(*http.Request) (string, bool)
	Clear(http.ResponseWriter, *http.Request)
}

// newPrincipalResolvers derives the request-scoped resolvers from sessions.
func newPrincipalResolvers(sessions principalSessions) composition.PrincipalResolvers {
	if sessions == nil {
		return composition.PrincipalResolvers{}
	}
	signedIn := func(r *http.Request) bool {
		_, ok := sessions.Current(r)
		return ok
	}
	return composition.PrincipalResolvers{
		AuthRequired:    signedIn,
		ResolveSignedIn: signedIn,
		ResolveViewer: func(r *http.Request) module.Viewer {
			sess, ok := sessions.Current(r)
			if !ok {
				return module.Viewer{}
			}
			return viewerFromSession(sess)
		},
		ResolveToken: func(r *http.Request) string {
			token, _ := sessions.AuthToken(r)
			return token
		},
		ClearSession: sessions.Clear,
	}
}

func viewerFromSession(sess session.Session) module.Viewer {
	name := strings.TrimSpace(sess.User.FullName)
	email := strings.TrimSpace(sess.User.Email)
	if name == "" {
		name = email
	}
	return module.Viewer{DisplayName: name, Email: email}
}
