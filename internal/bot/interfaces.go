package bot

import (
	"context"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"gopkg.in/telebot.v4"
)

type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()
}

// ChatAuthenticator logs chats in and resolves their sessions.
type ChatAuthenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context, id string) error
	BindChat(ctx context.Context, chatID int64, sessionID string) error
	ChatSession(ctx context.Context, chatID int64) (*models.Session, error)
}

// Workspace holds the editing session of every chat.
type Workspace interface {
	Collections(ctx context.Context, token string) ([]models.Collection, error)
	Open(ctx context.Context, owner, token string, collectionID int) (*editor.Session, error)
	Current(owner string) (*editor.Session, bool)
	Close(owner string)
}
