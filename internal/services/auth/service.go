// Package auth logs users in against the commerce API and keeps their sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/repository"
	"github.com/Houeta/collection-desk/internal/repository/sqlite"
	"github.com/google/uuid"
)

var (
	// ErrMissingCredentials is returned when the username or the password is blank.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrSessionRequired is returned when no valid session is presented.
	ErrSessionRequired = errors.New("login required")
	// ErrSessionExpired is returned for a session past its expiry. The session is removed.
	ErrSessionExpired = errors.New("session expired")
)

// LoginClient exchanges credentials for API tokens.
type LoginClient interface {
	Login(ctx context.Context, username, password string) (*models.Tokens, error)
}

// Service issues, resolves and revokes sessions.
type Service struct {
	log    *slog.Logger
	client LoginClient
	repo   sqlite.SessionRepository
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service whose sessions live for ttl.
func NewService(
	log *slog.Logger,
	client LoginClient,
	repo sqlite.SessionRepository,
	ttl time.Duration,
	opts ...Option,
) *Service {
	svc := &Service{log: log, client: client, repo: repo, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Login checks the credentials against the commerce API and stores a new session.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	const opn = "auth.Login"

	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	tokens, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.log.InfoContext(ctx, "Login rejected", "op", opn, "username", username, "error", err)
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	now := s.now()
	session := &models.Session{
		ID:           uuid.NewString(),
		Username:     username,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	if err = s.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("%s: failed to store session: %w", opn, err)
	}

	s.log.InfoContext(ctx, "User logged in", "op", opn, "username", username)

	return session, nil
}

// Authenticate resolves a session id into a live session.
func (s *Service) Authenticate(ctx context.Context, id string) (*models.Session, error) {
	const opn = "auth.Authenticate"

	if id == "" {
		return nil, ErrSessionRequired
	}

	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionRequired
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if session.Expired(s.now()) {
		if err = s.repo.DeleteSession(ctx, id); err != nil {
			s.log.WarnContext(ctx, "Failed to delete expired session", "op", opn, "error", err)
		}
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Logout removes the session and every chat bound to it.
func (s *Service) Logout(ctx context.Context, id string) error {
	if err := s.repo.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	return nil
}

// BindChat attaches a chat to a session.
func (s *Service) BindChat(ctx context.Context, chatID int64, sessionID string) error {
	if err := s.repo.BindChat(ctx, chatID, sessionID); err != nil {
		return fmt.Errorf("auth.BindChat: %w", err)
	}
	return nil
}

// UnbindChat detaches a chat from its session.
func (s *Service) UnbindChat(ctx context.Context, chatID int64) error {
	if err := s.repo.UnbindChat(ctx, chatID); err != nil {
		return fmt.Errorf("auth.UnbindChat: %w", err)
	}
	return nil
}

// ChatSession returns the live session bound to a chat.
func (s *Service) ChatSession(ctx context.Context, chatID int64) (*models.Session, error) {
	const opn = "auth.ChatSession"

	id, err := s.repo.GetChatSession(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotBound) {
			return nil, ErrSessionRequired
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return s.Authenticate(ctx, id)
}

// RunJanitor removes expired sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	const opn = "auth.RunJanitor"

	if interval <= 0 {
		s.log.WarnContext(ctx, "Session janitor disabled", "op", opn, "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.DebugContext(ctx, "Session janitor stopped", "op", opn)
			return
		case <-ticker.C:
			removed, err := s.repo.DeleteExpiredSessions(ctx, s.now())
			if err != nil {
				s.log.ErrorContext(ctx, "Failed to remove expired sessions", "op", opn, "error", err)
				continue
			}
			if removed > 0 {
				s.log.InfoContext(ctx, "Removed expired sessions", "op", opn, "count", removed)
			}
		}
	}
}
