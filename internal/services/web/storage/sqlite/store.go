// Package sqlite implements the web session store on SQLite.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tuvarna/passport-admin/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/tuvarna/passport-admin/internal/services/web/storage"
	"github.com/tuvarna/passport-admin/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const pragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

var errNotConfigured = errors.New("storage is not configured")

// Store persists web sessions. Session ids are stored as SHA-256 hashes so
// the database alone cannot be replayed as cookies.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	sqlDB, err := sql.Open("sqlite", "file:"+filepath.ToSlash(filepath.Clean(path))+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSession upserts a session. created_at survives updates.
func (s *Store) SaveSession(ctx context.Context, record webstorage.SessionRecord) error {
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return errors.New("session id is required")
	}
	if strings.TrimSpace(record.Token) == "" {
		return errors.New("session token is required")
	}
	if record.ExpiresAt.IsZero() {
		return errors.New("session expiry is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	userJSON := record.UserJSON
	if len(userJSON) == 0 {
		userJSON = []byte("{}")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO web_sessions (id_hash, token, user_json, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id_hash) DO UPDATE SET
		    token = excluded.token,
		    user_json = excluded.user_json,
		    expires_at = excluded.expires_at`,
		hashID(id), record.Token, userJSON,
		timeToUnixMillis(record.CreatedAt), timeToUnixMillis(record.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the session with id. Expiry is left to the caller.
func (s *Store) LoadSession(ctx context.Context, id string) (webstorage.SessionRecord, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.SessionRecord{}, false, errNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return webstorage.SessionRecord{}, false, nil
	}

	record := webstorage.SessionRecord{ID: id}
	var createdAt, expiresAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT token, user_json, created_at, expires_at FROM web_sessions WHERE id_hash = ?`,
		hashID(id),
	).Scan(&record.Token, &record.UserJSON, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return webstorage.SessionRecord{}, false, nil
	}
	if err != nil {
		return webstorage.SessionRecord{}, false, fmt.Errorf("load session: %w", err)
	}
	record.CreatedAt = unixMillisToTime(createdAt)
	record.ExpiresAt = unixMillisToTime(expiresAt)
	return record, true, nil
}

// DeleteSession removes the session with id. Missing sessions are ignored.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE id_hash = ?`, hashID(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session expired at now.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, errNotConfigured
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, timeToUnixMillis(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}

func hashID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.SessionStore = (*Store)(nil)
