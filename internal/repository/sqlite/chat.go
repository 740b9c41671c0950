package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/collection-desk/internal/repository"
)

// BindChat attaches the chat ID to a session, replacing any previous binding.
func (r *Repository) BindChat(ctx context.Context, chatID int64, sessionID string) error {
	const opn = "repository.sqlite.BindChat"
	_, err := r.db.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO chat_sessions (chat_id, session_id) VALUES (?, ?)",
		chatID,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// UnbindChat deletes the chat ID from table.
func (r *Repository) UnbindChat(ctx context.Context, chatID int64) error {
	const opn = "repository.sqlite.UnbindChat"
	_, err := r.db.ExecContext(ctx, "DELETE FROM chat_sessions WHERE chat_id = ?", chatID)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// GetChatSession returns the session ID bound to the chat.
func (r *Repository) GetChatSession(ctx context.Context, chatID int64) (string, error) {
	const opn = "repository.sqlite.GetChatSession"

	var sessionID string
	err := r.db.QueryRowContext(ctx, "SELECT session_id FROM chat_sessions WHERE chat_id = ?", chatID).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrChatNotBound
		}
		return "", fmt.Errorf("%s: failed to scan session_id: %w", opn, err)
	}

	return sessionID, nil
}
