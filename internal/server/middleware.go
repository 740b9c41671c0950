package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/auth"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			s.log.ErrorContext(c.Request.Context(), "Request failed", attrs...)
		case status >= http.StatusBadRequest:
			s.log.WarnContext(c.Request.Context(), "Request rejected", attrs...)
		default:
			s.log.DebugContext(c.Request.Context(), "Request served", attrs...)
		}
	}
}

// requireSession resolves the session cookie and redirects to the login page without one.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := s.sessionFromCookie(c)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionRequired) && !errors.Is(err, auth.ErrSessionExpired) {
				s.log.WarnContext(c.Request.Context(), "Failed to resolve session", "op", "server.requireSession", "error", err)
			}
			http.SetCookie(c.Writer, s.cookies.Expired())
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func (s *Server) sessionFromCookie(c *gin.Context) (*models.Session, error) {
	value, err := c.Cookie(auth.CookieName)
	if err != nil || value == "" {
		return nil, auth.ErrSessionRequired
	}

	id, err := s.cookies.SessionID(value)
	if err != nil {
		return nil, auth.ErrSessionRequired
	}

	return s.auth.Authenticate(c.Request.Context(), id)
}

func currentSession(c *gin.Context) *models.Session {
	return c.MustGet(sessionKey).(*models.Session)
}

// owner keys the editing session of a browser login.
func owner(session *models.Session) string {
	return "web:" + session.ID
}
