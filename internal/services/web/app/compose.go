package app

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/sessioncookie"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webhttp "github.com/tuvarna/passport-admin/internal/services/web/transport/http"
	"github.com/tuvarna/passport-admin/internal/services/web/transport/httpmux"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	AuthRequired        func(*http.Request) bool
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	// StaticFS is served under /static/ when set.
	StaticFS fs.FS
}

// Compose builds a root HTTP handler from module groups. Public modules may
// only own the root; every other prefix is protected and also answers on its
// slashless form.
func Compose(input ComposeInput) (http.Handler, error) {
	authenticated := input.AuthRequired
	if authenticated == nil {
		authenticated = func(*http.Request) bool { return false }
	}
	sameOrigin := requireSameOriginMutation(input.RequestSchemePolicy)
	signedIn := func(next http.Handler) http.Handler {
		return requireAuth(authenticated, sameOrigin(next))
	}

	mux := &rootMux{mux: http.NewServeMux(), owners: map[string]string{}}
	for _, feature := range input.PublicModules {
		if err := mux.mount("public", feature, false, sameOrigin); err != nil {
			return nil, err
		}
	}
	for _, feature := range input.ProtectedModules {
		if err := mux.mount("protected", feature, true, signedIn); err != nil {
			return nil, err
		}
	}

	if input.StaticFS != nil {
		if owner, ok := mux.owners[routepath.StaticPrefix]; ok {
			return nil, fmt.Errorf("static assets prefix %q is owned by module %q", routepath.StaticPrefix, owner)
		}
		httpmux.MountStatic(mux.mux, input.StaticFS, webhttp.WithStaticMime)
	}
	return mux.mux, nil
}

type rootMux struct {
	mux    *http.ServeMux
	owners map[string]string
}

func (m *rootMux) mount(group string, feature module.Module, protected bool, wrap func(http.Handler) http.Handler) error {
	if feature == nil {
		return fmt.Errorf("%s module is nil", group)
	}
	mount, err := feature.Mount()
	if err != nil {
		return fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", feature.ID())
	}

	isRoot := mount.Prefix == routepath.Root
	switch {
	case protected && isRoot:
		return fmt.Errorf("module %q must not mount the public root, got %q", feature.ID(), mount.Prefix)
	case !protected && !isRoot:
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), mount.Prefix)
	}

	patterns := []string{mount.Prefix}
	if protected {
		patterns = append(patterns, strings.TrimSuffix(mount.Prefix, "/"))
	}
	handler := wrap(mount.Handler)
	for _, pattern := range patterns {
		if owner, ok := m.owners[pattern]; ok {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), pattern, owner)
		}
		m.owners[pattern] = feature.ID()
		m.mux.Handle(pattern, handler)
	}
	return nil
}

// validatePrefix checks the raw prefix a module declares. Prefixes are never
// normalized, so "/users/ " is rejected rather than mounted as "/users/".
func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		return fmt.Errorf("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// requireAuth sends anonymous visitors to login, remembering where they
// were headed.
func requireAuth(authenticated func(*http.Request) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authenticated(r) {
			httpx.WriteRedirect(w, r, routepath.LoginWithNext(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireSameOriginMutation rejects cookie-authenticated writes that cannot
// prove they came from this origin.
func requireSameOriginMutation(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isMutationMethod(r.Method) {
				if _, ok := sessioncookie.Read(r); ok && !policy.SameOrigin(r) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
