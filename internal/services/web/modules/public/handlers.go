package public

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	flashnotice "github.com/tuvarna/passport-admin/internal/services/web/platform/flash"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/publichandler"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/validation"
	"github.com/tuvarna/passport-admin/internal/services/web/routepath"
	webtemplates "github.com/tuvarna/passport-admin/internal/services/web/templates"
)

const (
	noticeRegistered = "auth.notice.registered"
	noticeLoggedOut  = "auth.notice.logged_out"
)

type authService interface {
	healthBody() string
	login(ctx context.Context, r *http.Request, username, password string) (*http.Cookie, error)
	register(ctx context.Context, req apiclient.RegistrationRequest) error
	logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type handlers struct {
	publichandler.Base
	service authService
}

func newHandlers(s authService, base publichandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.Redirect(w, r, routepath.Dashboard)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.service.healthBody()))
}

// redirectAuthenticated sends signed-in visitors of the auth pages to the
// dashboard.
func (h handlers) redirectAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	if !h.ResolveRequestSignedIn(r) {
		return false
	}
	h.Redirect(w, r, routepath.Dashboard)
	return true
}

func (h handlers) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	form := loginForm{Next: routepath.SafeLocalPath(r.URL.Query().Get(routepath.NextQueryKey), "")}
	h.renderLogin(w, r, http.StatusOK, loginState{form: form, token: h.IssueSubmitToken()})
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	form := loginFormFromRequest(r)
	state := loginState{form: form, errs: form.validate(), token: h.postedToken(r)}
	if len(state.errs) > 0 {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, state)
		return
	}
	location, err := h.Submit(w, r, func(ctx context.Context) (submitguard.Outcome, error) {
		cookie, err := h.service.login(ctx, r, form.Username, form.Password)
		if err != nil {
			return submitguard.Outcome{}, err
		}
		return submitguard.Outcome{Location: form.destination(), Cookies: []*http.Cookie{cookie}}, nil
	})
	if err != nil {
		state.message = h.FormErrorMessage(h.PageLocalizer(w, r), err)
		state.token = h.tokenAfterFailure(state.token, err)
		h.renderLogin(w, r, formFailureStatus(err), state)
		return
	}
	h.Redirect(w, r, location)
}

func (h handlers) handleRegisterGet(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	h.renderRegister(w, r, http.StatusOK, registerState{token: h.IssueSubmitToken()})
}

func (h handlers) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	form := registerFormFromRequest(r)
	req, errs := form.validate()
	state := registerState{form: form, errs: errs, token: h.postedToken(r)}
	if len(errs) > 0 {
		h.renderRegister(w, r, http.StatusUnprocessableEntity, state)
		return
	}
	location, err := h.Submit(w, r, func(ctx context.Context) (submitguard.Outcome, error) {
		if err := h.service.register(ctx, req); err != nil {
			return submitguard.Outcome{}, err
		}
		return submitguard.Outcome{Location: routepath.Login}, nil
	})
	if err != nil {
		state.message = h.FormErrorMessage(h.PageLocalizer(w, r), err)
		state.token = h.tokenAfterFailure(state.token, err)
		h.renderRegister(w, r, formFailureStatus(err), state)
		return
	}
	h.WriteFlash(w, r, flashnotice.Success(noticeRegistered))
	h.Redirect(w, r, location)
}

// handleLogout always ends at the login page. A store failure is logged;
// the cookie is expired regardless.
func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.logout(r.Context(), w, r); err != nil {
		log.Printf("web logout failed request_id=%s err=%v", httpx.RequestIDOf(r), err)
	}
	h.WriteFlash(w, r, flashnotice.Info(noticeLoggedOut))
	h.Redirect(w, r, routepath.Login)
}

type loginState struct {
	form    loginForm
	errs    validation.Errors
	message string
	token   string
}

type registerState struct {
	form    registerForm
	errs    validation.Errors
	message string
	token   string
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, state loginState) {
	loc := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "auth.login.title"), status, loginView(loc, state))
}

func (h handlers) renderRegister(w http.ResponseWriter, r *http.Request, status int, state registerState) {
	loc := h.PageLocalizer(w, r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "auth.register.title"), status, registerView(loc, state))
}

func (h handlers) postedToken(r *http.Request) string {
	if token := strings.TrimSpace(r.PostFormValue(submitguard.FieldName)); token != "" {
		return token
	}
	return h.IssueSubmitToken()
}

func (h handlers) tokenAfterFailure(token string, err error) string {
	if errors.Is(err, submitguard.ErrMissingToken) {
		return h.IssueSubmitToken()
	}
	return token
}

func formFailureStatus(err error) int {
	if apperrors.LocalizationKey(err) == keyInvalidCredentials {
		return http.StatusUnauthorized
	}
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		return http.StatusBadRequest
	}
	return status
}
