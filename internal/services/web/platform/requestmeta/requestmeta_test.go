package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	newPost := func(target string, headers map[string]string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	tests := []struct {
		name   string
		req    *http.Request
		policy SchemePolicy
		want   bool
	}{
		{
			name: "matching origin",
			req:  newPost("http://admin.example.test/passports/create", map[string]string{"Origin": "http://admin.example.test"}),
			want: true,
		},
		{
			name: "referer fallback",
			req:  newPost("http://admin.example.test/logout", map[string]string{"Referer": "http://admin.example.test/passports?page=2"}),
			want: true,
		},
		{
			name: "foreign origin",
			req:  newPost("http://admin.example.test/logout", map[string]string{"Origin": "http://evil.example.test"}),
			want: false,
		},
		{
			name: "port mismatch",
			req:  newPost("http://admin.example.test:8090/logout", map[string]string{"Origin": "http://admin.example.test:9000"}),
			want: false,
		},
		{
			name: "no proof",
			req:  newPost("http://admin.example.test/logout", nil),
			want: false,
		},
		{
			name: "untrusted forwarded proto is ignored",
			req: newPost("https://admin.example.test/passports/1/delete", map[string]string{
				"Origin":            "http://admin.example.test",
				"X-Forwarded-Proto": "http",
			}),
			want: false,
		},
		{
			name: "trusted forwarded proto is used",
			req: newPost("https://admin.example.test/passports/1/delete", map[string]string{
				"Origin":            "http://admin.example.test",
				"X-Forwarded-Proto": "http",
			}),
			policy: SchemePolicy{TrustForwardedProto: true},
			want:   true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.policy.SameOrigin(tc.req); got != tc.want {
				t.Fatalf("SameOrigin() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if (SchemePolicy{}).IsHTTPS(plain) {
		t.Fatal("plain request reported as https")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !(SchemePolicy{}).IsHTTPS(tlsReq) {
		t.Fatal("tls request not reported as https")
	}

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if (SchemePolicy{}).IsHTTPS(proxied) {
		t.Fatal("forwarded proto trusted without policy")
	}
	if !(SchemePolicy{TrustForwardedProto: true}).IsHTTPS(proxied) {
		t.Fatal("forwarded proto ignored with policy")
	}
	if (SchemePolicy{}).IsHTTPS(nil) {
		t.Fatal("nil request reported as https")
	}
}
