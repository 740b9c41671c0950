package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/collection-desk/internal/commerce"
	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/auth"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"gopkg.in/telebot.v4"
)

const (
	helpText = `Collection Desk lets you review and reorder collection products.

/login <username> <password> - log in
/logout - log out
/collections [page] - list collections
/edit <id> - open a collection
/show - show the open collection
/search [term] - filter by name or code
/color [code] - filter by color code
/sort [name|code] - sort the list
/clear - clear filters and sort
/move <from> <to> - move a product to a new position
/cancel - revert to the fetched order
/save - review the new order before saving
/confirm - save the order
/dismiss - close the save review`

	loginHint   = "Log in first with /login <username> <password>"
	reloginHint = "Your session has ended, log in again with /login <username> <password>"
)

type sessionHandler func(ctx context.Context, c telebot.Context, session *models.Session) error

type editorHandler func(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error

// owner keys the editing session of a chat.
func owner(c telebot.Context) string {
	return "chat:" + strconv.FormatInt(c.Chat().ID, 10)
}

func (b *Bot) context() (context.Context, context.CancelFunc) {
	timeout := b.timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (b *Bot) send(c telebot.Context, text string) error {
	if err := c.Send(text); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// withSession resolves the chat's login before calling next.
func (b *Bot) withSession(next sessionHandler) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		ctx, cancel := b.context()
		defer cancel()

		session, err := b.auth.ChatSession(ctx, c.Chat().ID)
		if err != nil {
			return b.fail(ctx, c, nil, err)
		}

		return next(ctx, c, session)
	}
}

// withEditor resolves the chat's login and its open collection before calling next.
func (b *Bot) withEditor(next editorHandler) telebot.HandlerFunc {
	return b.withSession(func(ctx context.Context, c telebot.Context, session *models.Session) error {
		editing, ok := b.ws.Current(owner(c))
		if !ok {
			return b.send(c, "Open a collection first with /edit <id>")
		}
		return next(ctx, c, session, editing)
	})
}

// fail tells the chat what went wrong. A rejected token logs the chat out.
func (b *Bot) fail(ctx context.Context, c telebot.Context, session *models.Session, err error) error {
	var msg string

	switch {
	case errors.Is(err, auth.ErrSessionRequired), errors.Is(err, auth.ErrSessionExpired):
		msg = loginHint
	case errors.Is(err, auth.ErrMissingCredentials):
		msg = "Usage: /login <username> <password>"
	case errors.Is(err, commerce.ErrInvalidCredentials):
		msg = "Invalid username or password"
	case errors.Is(err, commerce.ErrUnauthorized):
		if session != nil {
			if logoutErr := b.auth.Logout(ctx, session.ID); logoutErr != nil {
				b.log.WarnContext(ctx, "Failed to delete rejected session", "op", "bot.fail", "error", logoutErr)
			}
		}
		b.ws.Close(owner(c))
		msg = reloginHint
	default:
		b.log.InfoContext(ctx, "Command failed", "op", "bot.fail", "chat", c.Chat().ID, "error", err)
		msg = editor.Describe(err)
	}

	return b.send(c, msg)
}

// startHandler process command /start.
func (b *Bot) startHandler(c telebot.Context) error {
	b.log.Info("User started the bot", "username", c.Sender().Username)

	return b.send(c, helpText)
}

func (b *Bot) loginHandler(c telebot.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return b.send(c, "Usage: /login <username> <password>")
	}

	// The command carries a password.
	if err := c.Delete(); err != nil {
		b.log.Debug("Failed to delete login message", "op", "bot.loginHandler", "error", err)
	}

	ctx, cancel := b.context()
	defer cancel()

	session, err := b.auth.Login(ctx, args[0], args[1])
	if err != nil {
		return b.fail(ctx, c, nil, err)
	}

	if err = b.auth.BindChat(ctx, c.Chat().ID, session.ID); err != nil {
		return b.fail(ctx, c, session, err)
	}
	b.ws.Close(owner(c))

	b.log.InfoContext(ctx, "Chat logged in", "chat", c.Chat().ID, "username", session.Username)

	return b.send(c, "Logged in as "+session.Username+". Send /collections to list collections.")
}

func (b *Bot) logoutHandler(ctx context.Context, c telebot.Context, session *models.Session) error {
	if err := b.auth.Logout(ctx, session.ID); err != nil {
		return b.fail(ctx, c, session, err)
	}
	b.ws.Close(owner(c))

	return b.send(c, "Logged out")
}

func (b *Bot) collectionsHandler(ctx context.Context, c telebot.Context, session *models.Session) error {
	page := 1
	if args := c.Args(); len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return b.send(c, "Usage: /collections [page]")
		}
		page = n
	}

	collections, err := b.ws.Collections(ctx, session.AccessToken)
	if err != nil {
		return b.fail(ctx, c, session, err)
	}

	return b.send(c, formatCollections(collections, page, b.pageSize))
}

func (b *Bot) editHandler(ctx context.Context, c telebot.Context, session *models.Session) error {
	args := c.Args()
	if len(args) != 1 {
		return b.send(c, "Usage: /edit <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return b.send(c, "Usage: /edit <id>")
	}

	editing, err := b.ws.Open(ctx, owner(c), session.AccessToken, id)
	if err != nil && editing == nil {
		return b.fail(ctx, c, session, err)
	}

	return b.changed(ctx, c, session, editing, err)
}

func (b *Bot) showHandler(_ context.Context, c telebot.Context, _ *models.Session, editing *editor.Session) error {
	return b.send(c, formatView(editing.View()))
}

func (b *Bot) searchHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	editing.SetSearch(strings.Join(c.Args(), " "))
	return b.changed(ctx, c, session, editing, nil)
}

func (b *Bot) colorHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	var code string
	if args := c.Args(); len(args) > 0 {
		code = args[0]
	}
	return b.changed(ctx, c, session, editing, editing.SetColor(ctx, code))
}

func (b *Bot) sortHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	var arg string
	if args := c.Args(); len(args) > 0 {
		arg = args[0]
	}

	key, err := models.ParseSortKey(arg)
	if err != nil {
		return b.send(c, "Usage: /sort [name|code]")
	}
	editing.SetSort(key)

	return b.changed(ctx, c, session, editing, nil)
}

func (b *Bot) clearHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	return b.changed(ctx, c, session, editing, editing.ClearFilters(ctx))
}

func (b *Bot) moveHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	args := c.Args()
	if len(args) != 2 {
		return b.send(c, "Usage: /move <from> <to>")
	}
	from, errFrom := strconv.Atoi(args[0])
	to, errTo := strconv.Atoi(args[1])
	if errFrom != nil || errTo != nil {
		return b.send(c, "Usage: /move <from> <to>")
	}

	return b.changed(ctx, c, session, editing, editing.Move(from-1, to-1))
}

func (b *Bot) cancelHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	return b.changed(ctx, c, session, editing, editing.Cancel())
}

func (b *Bot) saveHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	return b.changed(ctx, c, session, editing, editing.RequestSave())
}

func (b *Bot) confirmHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	if err := editing.ConfirmSave(ctx); err != nil {
		return b.fail(ctx, c, session, err)
	}
	return b.send(c, "Product order saved")
}

func (b *Bot) dismissHandler(ctx context.Context, c telebot.Context, session *models.Session, editing *editor.Session) error {
	editing.DismissSave()
	return b.changed(ctx, c, session, editing, nil)
}

// changed replies to a command that changed the editing session: with the new
// view, or with what went wrong.
func (b *Bot) changed(
	ctx context.Context,
	c telebot.Context,
	session *models.Session,
	editing *editor.Session,
	err error,
) error {
	switch {
	case err == nil, errors.Is(err, editor.ErrSuperseded):
	case errors.Is(err, commerce.ErrUnauthorized):
		return b.fail(ctx, c, session, err)
	case editing.View().State == editor.StateError:
		// the view carries the fetch error
	default:
		return b.fail(ctx, c, session, err)
	}

	return b.send(c, formatView(editing.View()))
}
