package bot

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/telebot.v4"
)

// Bot contains the bot API instance and other information.
type Bot struct {
	bot      API
	log      *slog.Logger
	auth     ChatAuthenticator
	ws       Workspace
	timeout  time.Duration // timeout bounds the commerce API calls of one command.
	pageSize int
}

func NewBot(
	log *slog.Logger,
	token string,
	poller time.Duration,
	authn ChatAuthenticator,
	ws Workspace,
	pageSize int,
) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{
		bot:      bot,
		log:      log,
		auth:     authn,
		ws:       ws,
		timeout:  time.Minute,
		pageSize: pageSize,
	}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	// Public routes.
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/login", b.loginHandler)

	// Routes that need a logged in chat.
	b.bot.Handle("/logout", b.withSession(b.logoutHandler))
	b.bot.Handle("/collections", b.withSession(b.collectionsHandler))
	b.bot.Handle("/edit", b.withSession(b.editHandler))
	b.bot.Handle("/show", b.withEditor(b.showHandler))
	b.bot.Handle("/search", b.withEditor(b.searchHandler))
	b.bot.Handle("/color", b.withEditor(b.colorHandler))
	b.bot.Handle("/sort", b.withEditor(b.sortHandler))
	b.bot.Handle("/clear", b.withEditor(b.clearHandler))
	b.bot.Handle("/move", b.withEditor(b.moveHandler))
	b.bot.Handle("/cancel", b.withEditor(b.cancelHandler))
	b.bot.Handle("/save", b.withEditor(b.saveHandler))
	b.bot.Handle("/confirm", b.withEditor(b.confirmHandler))
	b.bot.Handle("/dismiss", b.withEditor(b.dismissHandler))
}
