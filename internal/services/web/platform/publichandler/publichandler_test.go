package publichandler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	module "github.com/tuvarna/passport-admin/internal/services/web/module"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
	"github.com/tuvarna/passport-admin/internal/services/web/templates"
)

func TestSignedInDelegatesToResolver(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	if NewBase(module.Dependencies{}).ResolveRequestSignedIn(r) {
		t.Fatal("expected anonymous without a resolver")
	}
	base := NewBase(module.Dependencies{ResolveSignedIn: func(*http.Request) bool { return true }})
	if !base.ResolveRequestSignedIn(r) {
		t.Fatal("expected resolver result")
	}
}

func TestWritePublicPageUsesAuthLayout(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBase(module.Dependencies{}).WritePublicPage(rr, httptest.NewRequest(http.MethodGet, "/login", nil), "Sign in", 0, templates.Paragraph("marker", "marker"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `class="auth"`) || !strings.Contains(body, `class="marker"`) {
		t.Fatalf("body = %q", body)
	}
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("Accept-Language", "en-US")
	NewBase(module.Dependencies{}).WriteNotFound(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestWriteErrorMapsUntypedToServerError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBase(module.Dependencies{}).WriteError(rr, httptest.NewRequest(http.MethodGet, "/login", nil), errors.New("boom"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "boom") {
		t.Fatal("internal error text leaked")
	}
}

func TestSubmitWritesOutcomeCookiesOnEveryResponse(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	token := base.IssueSubmitToken()
	calls := 0
	fn := func(context.Context) (submitguard.Outcome, error) {
		calls++
		return submitguard.Outcome{
			Location: "/dashboard",
			Cookies:  []*http.Cookie{{Name: "pa_session", Value: "sess-7", Path: "/"}},
		}, nil
	}

	for attempt := range 2 {
		form := url.Values{submitguard.FieldName: {token}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		location, err := base.Submit(rr, req, fn)
		if err != nil || location != "/dashboard" {
			t.Fatalf("attempt %d: Submit() = %q, %v", attempt, location, err)
		}
		cookies := rr.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Value != "sess-7" {
			t.Fatalf("attempt %d: cookies = %+v", attempt, cookies)
		}
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestSubmitFailureWritesNoCookies(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	form := url.Values{submitguard.FieldName: {base.IssueSubmitToken()}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	boom := errors.New("api down")
	_, err := base.Submit(rr, req, func(context.Context) (submitguard.Outcome, error) {
		return submitguard.Outcome{Cookies: []*http.Cookie{{Name: "pa_session", Value: "x"}}}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got := rr.Header().Values("Set-Cookie"); len(got) != 0 {
		t.Fatalf("Set-Cookie = %v, want none", got)
	}
}
