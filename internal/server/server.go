// Package server is the browser front end: server rendered pages for login,
// the collection list and the editing screen.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const shutdownTimeout = 10 * time.Second

// Authenticator issues and resolves login sessions.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Authenticate(ctx context.Context, id string) (*models.Session, error)
	Logout(ctx context.Context, id string) error
}

// Workspace holds the editing sessions of logged in users.
type Workspace interface {
	Collections(ctx context.Context, token string) ([]models.Collection, error)
	Open(ctx context.Context, owner, token string, collectionID int) (*editor.Session, error)
	Session(owner string, collectionID int) (*editor.Session, bool)
	Close(owner string)
}

// Cookies signs the session cookie.
type Cookies interface {
	Cookie(sessionID string) (*http.Cookie, error)
	Expired() *http.Cookie
	SessionID(value string) (string, error)
}

// Options configure the HTTP front end.
type Options struct {
	Addr                string
	LoginRate           string // LoginRate is a limiter formatted rate, e.g. "10-M".
	CollectionsPageSize int
}

// Server serves the admin pages.
type Server struct {
	log     *slog.Logger
	auth    Authenticator
	ws      Workspace
	cookies Cookies
	opts    Options

	engine *gin.Engine
	http   *http.Server
}

// New builds the router. It fails when the login rate cannot be parsed.
func New(log *slog.Logger, authn Authenticator, ws Workspace, cookies Cookies, opts Options) (*Server, error) {
	rate, err := limiter.NewRateFromFormatted(opts.LoginRate)
	if err != nil {
		return nil, fmt.Errorf("server.New: invalid login rate %q: %w", opts.LoginRate, err)
	}
	if opts.CollectionsPageSize <= 0 {
		opts.CollectionsPageSize = 5
	}

	srv := &Server{
		log:     log,
		auth:    authn,
		ws:      ws,
		cookies: cookies,
		opts:    opts,
		engine:  gin.New(),
	}

	srv.engine.SetHTMLTemplate(pages)
	srv.engine.Use(gin.Recovery(), srv.logRequests())
	srv.registerRoutes(mgin.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		mgin.WithLimitReachedHandler(srv.loginLimited),
	))

	srv.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           srv.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	const opn = "server.Run"

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "HTTP server is listening", "op", opn, "addr", s.opts.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s: %w", opn, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: failed to shut down: %w", opn, err)
	}
	s.log.InfoContext(ctx, "HTTP server stopped", "op", opn)

	return nil
}

func (s *Server) registerRoutes(loginLimit gin.HandlerFunc) {
	s.engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	s.engine.GET("/login", s.loginPage)
	s.engine.POST("/login", loginLimit, s.login)
	s.engine.NoRoute(s.notFound)

	protected := s.engine.Group("/", s.requireSession())
	protected.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/collections") })
	protected.POST("/logout", s.logout)
	protected.GET("/collections", s.collections)
	protected.GET("/edit", s.edit)

	edit := protected.Group("/edit")
	edit.POST("/filters", s.editAction(s.applyFilters))
	edit.POST("/filters/clear", s.editAction(s.clearFilters))
	edit.POST("/move", s.editAction(s.move))
	edit.POST("/cancel", s.editAction(s.cancel))
	edit.POST("/save", s.editAction(s.requestSave))
	edit.POST("/save/confirm", s.editAction(s.confirmSave))
	edit.POST("/save/dismiss", s.editAction(s.dismissSave))
}
