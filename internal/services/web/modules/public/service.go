package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/session"
)

const keyInvalidCredentials = "auth.login.invalid"

// AuthGateway performs the API calls behind sign-in and registration.
type AuthGateway interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (apiclient.LoginResponse, error)
	Register(ctx context.Context, req apiclient.RegistrationRequest) error
}

// SessionManager binds an API token to the browser and later discards it.
type SessionManager interface {
	// Start stores the session and returns its cookie unwritten, so every
	// response sharing one login submission can carry it.
	Start(ctx context.Context, r *http.Request, token string, user apiclient.User) (session.Session, *http.Cookie, error)
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// NewAPIGateway backs the module with the remote users API. A nil client
// yields the unavailable gateway.
func NewAPIGateway(client *apiclient.Client) AuthGateway {
	if client == nil {
		return unavailableAuthGateway{}
	}
	return client
}

type unavailableAuthGateway struct{}

func (unavailableAuthGateway) Login(context.Context, apiclient.LoginRequest) (apiclient.LoginResponse, error) {
	return apiclient.LoginResponse{}, apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}

func (unavailableAuthGateway) Register(context.Context, apiclient.RegistrationRequest) error {
	return apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}

type unavailableSessions struct{}

func (unavailableSessions) Start(context.Context, *http.Request, string, apiclient.User) (session.Session, *http.Cookie, error) {
	return session.Session{}, nil, apperrors.E(apperrors.KindUnavailable, "session store is not configured")
}

func (unavailableSessions) Logout(context.Context, http.ResponseWriter, *http.Request) error {
	return nil
}

type service struct {
	auth     AuthGateway
	sessions SessionManager
}

func newService(gateway AuthGateway, sessions SessionManager) service {
	if gateway == nil {
		gateway = unavailableAuthGateway{}
	}
	if sessions == nil {
		sessions = unavailableSessions{}
	}
	return service{auth: gateway, sessions: sessions}
}

func (service) healthBody() string {
	return "ok"
}

// login exchanges credentials for a token and stores the session, returning
// the session cookie. The API answers wrong credentials with 401, which here
// means the form was wrong, not that a session expired.
func (s service) login(ctx context.Context, r *http.Request, username, password string) (*http.Cookie, error) {
	resp, err := s.auth.Login(ctx, apiclient.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			return nil, apperrors.EK(apperrors.KindInvalidInput, keyInvalidCredentials, "invalid credentials")
		}
		return nil, err
	}
	_, cookie, err := s.sessions.Start(ctx, r, resp.Token, resp.User)
	return cookie, err
}

func (s service) register(ctx context.Context, req apiclient.RegistrationRequest) error {
	return s.auth.Register(ctx, req)
}

func (s service) logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return s.sessions.Logout(ctx, w, r)
}
