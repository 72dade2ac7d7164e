// Package apiclient calls the remote passport API over HTTP/JSON.
//
// Every call attaches the session bearer token when one is supplied and maps
// responses onto typed errors: 401 becomes KindUnauthorized, any other
// non-2xx becomes KindRequestFailed, and transport failures become
// KindNetworkFailure. Calls are never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:8080/api/v1"

const (
	instrumentationName = "github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	maxResponseBytes    = 8 << 20
	userAgent           = "passport-admin-web/1.0"
)

// errorMessagePaths lists where the API may place a human-readable message.
var errorMessagePaths = []string{"message", "errorMessage", "error", "detail"}

// Client is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *log.Logger
	tracer trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client. The default is a client with
// no timeout beyond the transport defaults.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for transport failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be an absolute http(s) url", baseURL)
	}
	c := &Client{
		base:   base,
		http:   &http.Client{},
		logger: log.Default(),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Fetch performs one API request. path is relative to the base URL and may
// carry a query string. body, when non-nil, is sent as JSON. out, when
// non-nil, receives the decoded 2xx JSON body; empty bodies leave it as is.
func (c *Client) Fetch(ctx context.Context, method, path, token string, body, out any) error {
	target := c.resolve(path)
	ctx, span := c.tracer.Start(ctx, "api "+method+" "+target.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", target.Path),
			attribute.String("server.address", target.Host),
		),
	)
	defer span.End()

	err := c.do(ctx, method, target, token, body, out, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
	}
	return err
}

func (c *Client) do(ctx context.Context, method string, target *url.URL, token string, body, out any, span trace.Span) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Printf("api request failed method=%s path=%s err=%v", method, target.Path, err)
		}
		return apperrors.Wrap(apperrors.KindNetworkFailure, "api unreachable", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Wrap(apperrors.KindNetworkFailure, "read api response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Error{Kind: apperrors.KindUnauthorized, Status: resp.StatusCode, Message: "unauthorized"}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		code, message := parseErrorBody(data)
		return apperrors.RequestFailed(resp.StatusCode, code, message)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.KindUnknown, "decode api response", err)
	}
	return nil
}

func (c *Client) resolve(path string) *url.URL {
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	u := c.base.JoinPath(strings.TrimPrefix(rawPath, "/"))
	u.RawQuery = rawQuery
	return u
}

// parseErrorBody extracts the API errorCode and message from a JSON error
// payload. Non-JSON bodies are used as the message when short.
func parseErrorBody(data []byte) (code, message string) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", ""
	}
	if !gjson.ValidBytes(data) {
		if len(data) <= 200 && !bytes.ContainsAny(data, "<>") {
			return "", string(data)
		}
		return "", ""
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		if doc.Type == gjson.String {
			return "", doc.String()
		}
		return "", ""
	}
	code = doc.Get("errorCode").String()
	for _, p := range errorMessagePaths {
		if v := doc.Get(p); v.Exists() && v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			return code, v.String()
		}
	}
	return code, ""
}
