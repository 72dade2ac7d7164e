// Package session owns the login session lifecycle: creating a session after
// a successful API login, resolving it from the request cookie, and
// discarding it on logout, expiry, or an API 401.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/sessioncookie"
	"github.com/tuvarna/passport-admin/internal/services/web/storage"
)

// DefaultTTL bounds a session whose token carries no usable expiry.
const DefaultTTL = 12 * time.Hour

// Session is an authenticated login: the API bearer token and the user the
// API returned with it.
type Session struct {
	ID        string
	Token     string
	User      apiclient.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Options configures a Manager.
type Options struct {
	TTL    time.Duration
	Policy requestmeta.SchemePolicy
	Logger *log.Logger
	Now    func() time.Time
}

// Manager is safe for concurrent use.
type Manager struct {
	store  storage.SessionStore
	ttl    time.Duration
	policy requestmeta.SchemePolicy
	logger *log.Logger
	now    func() time.Time
}

// NewManager returns a manager persisting sessions in store.
func NewManager(store storage.SessionStore, opts Options) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	m := &Manager{
		store:  store,
		ttl:    opts.TTL,
		policy: opts.Policy,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m, nil
}

type requestState struct {
	mu       sync.Mutex
	resolved bool
	session  Session
	ok       bool
}

type requestStateKey struct{}

// Middleware installs per-request session state. The session is loaded from
// the store at most once per request.
func (m *Manager) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), requestStateKey{}, &requestState{})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Login starts a session for token and user and writes the session cookie.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, token string, user apiclient.User) (Session, error) {
	sess, cookie, err := m.Start(ctx, r, token, user)
	if err != nil {
		return Session{}, err
	}
	if w != nil {
		http.SetCookie(w, cookie)
	}
	return sess, nil
}

// Start stores a session for token and user and returns the cookie that
// binds it to the browser without writing it anywhere. A previous session
// carried by r is deleted.
func (m *Manager) Start(ctx context.Context, r *http.Request, token string, user apiclient.User) (Session, *http.Cookie, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, nil, errors.New("session token is required")
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return Session{}, nil, fmt.Errorf("marshal session user: %w", err)
	}
	now := m.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: m.expiry(token, now),
	}
	if err := m.store.SaveSession(ctx, storage.SessionRecord{
		ID:        sess.ID,
		Token:     sess.Token,
		UserJSON:  userJSON,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	}); err != nil {
		return Session{}, nil, fmt.Errorf("save session: %w", err)
	}

	// A previous session on this browser is replaced.
	if previous, ok := sessioncookie.Read(r); ok && previous != sess.ID {
		if err := m.store.DeleteSession(ctx, previous); err != nil {
			m.logger.Printf("session replace cleanup failed err=%v", err)
		}
	}
	m.remember(r, sess, true)
	return sess, sessioncookie.New(r, sess.ID, sess.ExpiresAt, m.policy), nil
}

// Logout deletes the request's session and expires the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sessioncookie.Clear(w, r, m.policy)
	m.remember(r, Session{}, false)
	id, ok := sessioncookie.Read(r)
	if !ok {
		return nil
	}
	if err := m.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Clear discards the request's session, logging store failures. It is the
// recovery used when the API rejects the session token.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()
	if r != nil {
		ctx = context.WithoutCancel(r.Context())
	}
	if err := m.Logout(ctx, w, r); err != nil {
		m.logger.Printf("session clear failed err=%v", err)
	}
}

// Current returns the live session of r.
func (m *Manager) Current(r *http.Request) (Session, bool) {
	if r == nil {
		return Session{}, false
	}
	state, _ := r.Context().Value(requestStateKey{}).(*requestState)
	if state == nil {
		return m.load(r)
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if !state.resolved {
		state.session, state.ok = m.load(r)
		state.resolved = true
	}
	return state.session, state.ok
}

// AuthToken returns the bearer token of r's session.
func (m *Manager) AuthToken(r *http.Request) (string, bool) {
	sess, ok := m.Current(r)
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// IsAuthenticated reports whether r carries a live session.
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	_, ok := m.Current(r)
	return ok
}

// Sweep deletes every expired session.
func (m *Manager) Sweep(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpiredSessions(ctx, m.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return n, nil
}

func (m *Manager) load(r *http.Request) (Session, bool) {
	id, ok := sessioncookie.Read(r)
	if !ok {
		return Session{}, false
	}
	ctx := r.Context()
	record, found, err := m.store.LoadSession(ctx, id)
	if err != nil {
		m.logger.Printf("session load failed err=%v", err)
		return Session{}, false
	}
	if !found || strings.TrimSpace(record.Token) == "" {
		return Session{}, false
	}
	if record.Expired(m.now()) {
		if err := m.store.DeleteSession(ctx, id); err != nil {
			m.logger.Printf("expired session delete failed err=%v", err)
		}
		return Session{}, false
	}

	sess := Session{
		ID:        id,
		Token:     record.Token,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}
	if len(record.UserJSON) > 0 {
		if err := json.Unmarshal(record.UserJSON, &sess.User); err != nil {
			m.logger.Printf("session user decode failed err=%v", err)
		}
	}
	return sess, true
}

func (m *Manager) remember(r *http.Request, sess Session, ok bool) {
	if r == nil {
		return
	}
	state, _ := r.Context().Value(requestStateKey{}).(*requestState)
	if state == nil {
		return
	}
	state.mu.Lock()
	state.session, state.ok, state.resolved = sess, ok, true
	state.mu.Unlock()
}

// expiry caps the session at the token's exp claim when the token is a JWT
// with a future expiry. The signature is not checked; the API stays the
// authority on token validity.
func (m *Manager) expiry(token string, now time.Time) time.Time {
	expires := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return expires
	}
	exp := claims.ExpiresAt.Time.UTC()
	if exp.After(now) && exp.Before(expires) {
		return exp
	}
	return expires
}
