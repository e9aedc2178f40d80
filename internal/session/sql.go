package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var _ Store = (*SQLStore)(nil)

// Schema creates the sessions table.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
	    token_hash CHAR(64)  NOT NULL PRIMARY KEY,
	    user_id    CHAR(36)  NOT NULL,
	    expires_at DATETIME  NOT NULL,
	    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_sessions_expires (expires_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SQLStore keeps sessions in MySQL.  Times are written in UTC.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore returns a Store bound to db.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, time.Time, error) {
	tok, err := NewToken()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := s.now().UTC().Add(ttl).Truncate(time.Second)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, user_id, expires_at) VALUES (?, ?, ?)`,
		hashToken(tok), userID, exp,
	); err != nil {
		return "", time.Time{}, fmt.Errorf("insert session: %w", err)
	}
	return tok, exp, nil
}

func (s *SQLStore) Lookup(ctx context.Context, token string) (string, error) {
	var uid string
	err := s.db.GetContext(ctx, &uid,
		`SELECT user_id FROM sessions WHERE token_hash = ? AND expires_at > ? LIMIT 1`,
		hashToken(token), s.now().UTC(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("select session: %w", err)
	}
	return uid, nil
}

func (s *SQLStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = ?`, hashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and reports how many were removed.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
