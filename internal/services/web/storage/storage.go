// Package storage declares persistence contracts for web-owned session data.
//
// Passport and user records live in the remote API; the only state this
// service persists is the login session that holds the API bearer token.
package storage

import (
	"context"
	"time"
)

// SessionRecord is one persisted login session.
type SessionRecord struct {
	ID        string
	Token     string
	UserJSON  []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the record is no longer usable at now.
func (r SessionRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// SessionStore persists login sessions keyed by their opaque id.
type SessionStore interface {
	Close() error
	SaveSession(ctx context.Context, record SessionRecord) error
	LoadSession(ctx context.Context, id string) (SessionRecord, bool, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
