package public

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/publichandler"
	"github.com/tuvarna/passport-admin/internal/services/web/session"
)

type fakeAuthGateway struct {
	mu            sync.Mutex
	loginResp     apiclient.LoginResponse
	loginErr      error
	registerErr   error
	lastLogin     apiclient.LoginRequest
	lastRegister  apiclient.RegistrationRequest
	loginCalls    int
	registerCalls int

	// loginStarted and loginRelease, when set, hold Login until released.
	loginStarted chan struct{}
	loginRelease chan struct{}
}

func (f *fakeAuthGateway) Login(_ context.Context, req apiclient.LoginRequest) (apiclient.LoginResponse, error) {
	if f.loginRelease != nil {
		close(f.loginStarted)
		<-f.loginRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	f.lastLogin = req
	return f.loginResp, f.loginErr
}

func (f *fakeAuthGateway) Register(_ context.Context, req apiclient.RegistrationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	f.lastRegister = req
	return f.registerErr
}

type fakeSessions struct {
	mu          sync.Mutex
	loginErr    error
	logoutErr   error
	lastToken   string
	lastUser    apiclient.User
	loginCalls  int
	logoutCalls int
}

func (f *fakeSessions) Start(_ context.Context, _ *http.Request, token string, user apiclient.User) (session.Session, *http.Cookie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	f.lastToken = token
	f.lastUser = user
	if f.loginErr != nil {
		return session.Session{}, nil, f.loginErr
	}
	id := fmt.Sprintf("sess-%d", f.loginCalls)
	return session.Session{ID: id, Token: token, User: user}, &http.Cookie{Name: "pa_session", Value: id, Path: "/"}, nil
}

func (f *fakeSessions) Logout(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

type publicFixture struct {
	gateway  *fakeAuthGateway
	sessions *fakeSessions
	signedIn bool
}

func newFixture() *publicFixture {
	return &publicFixture{
		gateway: &fakeAuthGateway{loginResp: apiclient.LoginResponse{
			Token: "api-token-1",
			User:  apiclient.User{ID: 3, FullName: "Ana Ivanova", Email: "ana@example.com"},
		}},
		sessions: &fakeSessions{},
	}
}

func (f *publicFixture) handler(t *testing.T) http.Handler {
	t.Helper()
	base := publichandler.NewBase(module.Dependencies{
		ResolveSignedIn: func(*http.Request) bool { return f.signedIn },
	})
	mount, err := New(WithGateway(f.gateway), WithSessions(f.sessions), WithBase(base)).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/" {
		t.Fatalf("Prefix = %q, want /", mount.Prefix)
	}
	return mount.Handler
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept-Language", "en-US")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func post(h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Language", "en-US")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func hasCookie(rr *httptest.ResponseRecorder, name string) bool {
	_, ok := cookieValue(rr, name)
	return ok
}

func cookieValue(rr *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
