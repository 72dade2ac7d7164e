package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api/v1", WithHTTPClient(srv.Client()), WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New("/api/v1"); err == nil {
		t.Fatal("expected error for relative base url")
	}
	c, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error = %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
}

func TestFetchSendsBearerTokenAndJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if r.URL.Path != "/api/v1/passports" || r.Method != http.MethodPost {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var in PassportInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Passport{ID: 7, Name: in.Name})
	})

	p, err := c.CreatePassport(context.Background(), "tok-1", PassportInput{Name: "Бойлер"})
	if err != nil {
		t.Fatalf("CreatePassport() error = %v", err)
	}
	if p.ID != 7 || p.Name != "Бойлер" {
		t.Fatalf("passport = %+v", p)
	}
}

func TestFetchOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("unexpected Authorization header")
		}
		w.WriteHeader(http.StatusOK)
	})
	if err := c.Register(context.Background(), RegistrationRequest{Email: "a@b.bg"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestFetchMapsStatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    apperrors.Kind
		wantMessage string
		wantCode    string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"expired"}`, wantKind: apperrors.KindUnauthorized},
		{name: "json message", status: http.StatusBadRequest, body: `{"errorCode":5,"message":"size must be positive"}`, wantKind: apperrors.KindRequestFailed, wantMessage: "size must be positive", wantCode: "5"},
		{name: "alternate message field", status: http.StatusConflict, body: `{"errorCode":1,"errorMessage":"already exists"}`, wantKind: apperrors.KindRequestFailed, wantMessage: "already exists", wantCode: "1"},
		{name: "plain text", status: http.StatusBadRequest, body: `bad serial`, wantKind: apperrors.KindRequestFailed, wantMessage: "bad serial"},
		{name: "empty body", status: http.StatusInternalServerError, wantKind: apperrors.KindRequestFailed, wantMessage: "Internal Server Error"},
		{name: "html body", status: http.StatusBadGateway, body: `<html>oops</html>`, wantKind: apperrors.KindRequestFailed, wantMessage: "Bad Gateway"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			err := c.Fetch(context.Background(), http.MethodGet, "/passports", "tok", nil, nil)
			if got := apperrors.KindOf(err); got != tc.wantKind {
				t.Fatalf("KindOf() = %q, want %q (err %v)", got, tc.wantKind, err)
			}
			if apperrors.Status(err) != tc.status {
				t.Fatalf("Status() = %d, want %d", apperrors.Status(err), tc.status)
			}
			if tc.wantMessage != "" && err.Error() != tc.wantMessage {
				t.Fatalf("message = %q, want %q", err.Error(), tc.wantMessage)
			}
			var appErr apperrors.Error
			if errors.As(err, &appErr) && appErr.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", appErr.Code, tc.wantCode)
			}
		})
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := New(base, WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = c.Fetch(context.Background(), http.MethodGet, "/passports", "", nil, nil)
	if !apperrors.Is(err, apperrors.KindNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestFetchDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_ = c.DeletePassport(context.Background(), "tok", 3)
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestListPassportsSendsPagingQuery(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "page=2&search=abc&size=20" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"currentPage":2,"totalPages":3,"size":20,"totalItems":45,"items":[{"id":1,"name":"A","fromSerialNumber":1,"toSerialNumber":99}]}`)
	})

	page, err := c.ListPassports(context.Background(), "tok", paging.Params{Page: 2, Size: 20, Search: " abc "})
	if err != nil {
		t.Fatalf("ListPassports() error = %v", err)
	}
	if page.CurrentPage != 2 || page.TotalPages != 3 || len(page.Items) != 1 || page.Items[0].ToSerialNumber != 99 {
		t.Fatalf("page = %+v", page)
	}
}

func TestListUsersNormalizesEmptyPage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{}`)
	})
	page, err := c.ListUsers(context.Background(), "tok", paging.Params{})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if page.CurrentPage != 1 || page.Items == nil {
		t.Fatalf("page = %+v", page)
	}
}

func TestGetPassportMapsNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/passports/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.GetPassport(context.Background(), "tok", 42)
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePassportToleratesEmptyBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	})
	p, err := c.UpdatePassport(context.Background(), "tok", 5, PassportInput{Name: "X"})
	if err != nil {
		t.Fatalf("UpdatePassport() error = %v", err)
	}
	if p.ID != 5 {
		t.Fatalf("ID = %d, want 5", p.ID)
	}
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin@tu-varna.bg" || req.Password != "secret1" {
			t.Errorf("login body = %+v", req)
		}
		_, _ = io.WriteString(w, `{"token":"jwt","user":{"id":1,"fullName":"Админ","email":"admin@tu-varna.bg","role":"ADMIN"}}`)
	})
	resp, err := c.Login(context.Background(), LoginRequest{Username: "admin@tu-varna.bg", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token != "jwt" || resp.User.FullName != "Админ" || resp.User.Role != "ADMIN" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestLoginRejectsMissingToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"user":{"id":1}}`)
	})
	if _, err := c.Login(context.Background(), LoginRequest{}); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestFetchInvalidJSONIsUnknown(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":`)
	})
	var out Passport
	err := c.Fetch(context.Background(), http.MethodGet, "/passports/1", "tok", nil, &out)
	if !apperrors.Is(err, apperrors.KindUnknown) {
		t.Fatalf("expected unknown error, got %v", err)
	}
}
