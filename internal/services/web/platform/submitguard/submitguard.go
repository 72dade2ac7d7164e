// Package submitguard deduplicates form submissions keyed by a one-time
// token rendered into each form.
//
// A token moves Idle -> Submitting -> Succeeded. A failed submission returns
// the token to Idle so the user can correct the form and retry. The work runs
// detached from the cancellation of the request that started it, so a
// duplicate that outlives an abandoned first request still sees the result.
package submitguard

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/tuvarna/passport-admin/internal/services/web/platform/errors"
	"golang.org/x/sync/singleflight"
)

// FieldName is the hidden form input carrying the token.
const FieldName = "submit_token"

// DefaultRetention is how long a succeeded token keeps replaying its result.
const DefaultRetention = 30 * time.Minute

// State is the lifecycle position of one token.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "idle"
	}
}

// ErrMissingToken is returned for posts that carry no submit token.
var ErrMissingToken = apperrors.EK(apperrors.KindInvalidInput, "core.form.expired", "submit token is missing")

// Outcome is what a succeeded submission hands to every caller sharing its
// token: where to navigate, plus cookies each response must carry.
type Outcome struct {
	Location string
	Cookies  []*http.Cookie
}

// Apply writes the outcome cookies to w.
func (o Outcome) Apply(w http.ResponseWriter) {
	if w == nil {
		return
	}
	for _, cookie := range o.Cookies {
		if cookie != nil {
			http.SetCookie(w, cookie)
		}
	}
}

type completion struct {
	outcome Outcome
	at      time.Time
}

// Guard tracks submit tokens. The zero value is not usable; call New.
type Guard struct {
	group     singleflight.Group
	retention time.Duration
	now       func() time.Time

	mu        sync.Mutex
	inflight  map[string]struct{}
	completed map[string]completion
}

// New returns a Guard that remembers succeeded tokens for retention.
func New(retention time.Duration) *Guard {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Guard{
		retention: retention,
		now:       time.Now,
		inflight:  map[string]struct{}{},
		completed: map[string]completion{},
	}
}

// Issue returns a fresh token for a newly rendered form.
func (g *Guard) Issue() string {
	return uuid.NewString()
}

// State reports where token is in its lifecycle.
func (g *Guard) State(token string) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.inflight[token]; ok {
		return StateSubmitting
	}
	if c, ok := g.completed[token]; ok && g.now().Sub(c.at) < g.retention {
		return StateSucceeded
	}
	return StateIdle
}

// Submit runs fn at most once per token. Concurrent calls with the same
// token wait for the in-flight call and share its outcome; calls after
// success replay the outcome without running fn again.
//
// fn receives ctx without its cancellation: the first caller going away
// must not abort work its duplicates are waiting on.
func (g *Guard) Submit(ctx context.Context, token string, fn func(context.Context) (Outcome, error)) (Outcome, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Outcome{}, ErrMissingToken
	}
	if ctx == nil {
		ctx = context.Background()
	}
	detached := context.WithoutCancel(ctx)
	v, err, _ := g.group.Do(token, func() (any, error) {
		if outcome, ok := g.replay(token); ok {
			return outcome, nil
		}
		g.begin(token)
		outcome, err := fn(detached)
		g.finish(token, outcome, err)
		if err != nil {
			return Outcome{}, err
		}
		return outcome, nil
	})
	outcome, _ := v.(Outcome)
	return outcome, err
}

func (g *Guard) replay(token string) (Outcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.completed[token]
	if !ok {
		return Outcome{}, false
	}
	if g.now().Sub(c.at) >= g.retention {
		delete(g.completed, token)
		return Outcome{}, false
	}
	return c.outcome, true
}

func (g *Guard) begin(token string) {
	g.mu.Lock()
	g.inflight[token] = struct{}{}
	g.mu.Unlock()
}

func (g *Guard) finish(token string, outcome Outcome, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, token)
	if err != nil {
		return
	}
	now := g.now()
	for key, c := range g.completed {
		if now.Sub(c.at) >= g.retention {
			delete(g.completed, key)
		}
	}
	g.completed[token] = completion{outcome: outcome, at: now}
}
