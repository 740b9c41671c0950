package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/repository"
)

// SaveSession inserts the session or replaces a session with the same id.
func (r *Repository) SaveSession(ctx context.Context, session *models.Session) error {
	const opn = "repository.sqlite.SaveSession"

	_, err := r.db.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO sessions (id, username, access_token, refresh_token, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)",
		session.ID,
		session.Username,
		session.AccessToken,
		session.RefreshToken,
		session.CreatedAt.Unix(),
		session.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// GetSession returns the session stored under id.
func (r *Repository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	const opn = "repository.sqlite.GetSession"

	var (
		session            models.Session
		refresh            sql.NullString
		createdAt, expires int64
	)

	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, username, access_token, refresh_token, created_at, expires_at FROM sessions WHERE id = ?",
		id,
	).Scan(&session.ID, &session.Username, &session.AccessToken, &refresh, &createdAt, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%s: failed to get session: %w", opn, err)
	}

	session.RefreshToken = refresh.String
	session.CreatedAt = time.Unix(createdAt, 0)
	session.ExpiresAt = time.Unix(expires, 0)

	return &session, nil
}

// DeleteSession removes the session and, through the foreign key, its chat bindings.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	const opn = "repository.sqlite.DeleteSession"

	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// DeleteExpiredSessions removes every session that expired at or before now and
// returns how many were removed.
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	const opn = "repository.sqlite.DeleteExpiredSessions"

	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count removed sessions: %w", opn, err)
	}

	return removed, nil
}
