package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finnet/internal/models"
	"finnet/internal/storage"
)

// CreateSession persists a login session. A token is generated if unset.
func (s *SQLiteStore) CreateSession(ctx context.Context, sess *models.Session) error {
	if sess.Token == "" {
		sess.Token = uuid.New().String()
	}
	if sess.CreatedAt == 0 {
		sess.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)",
		sess.Token, sess.UserID, sess.CreatedAt, sess.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by token. Expired sessions are reported
// as not found and cleaned up opportunistically.
func (s *SQLiteStore) GetSession(ctx context.Context, token string) (*models.Session, error) {
	sess := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		"SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ?", token,
	).Scan(&sess.Token, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if sess.ExpiresAt > 0 && sess.ExpiresAt <= time.Now().Unix() {
		_ = s.DeleteSession(ctx, token)
		return nil, fmt.Errorf("session expired: %w", storage.ErrNotFound)
	}

	return sess, nil
}

// DeleteSession removes a session. Unknown tokens are not an error.
func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
