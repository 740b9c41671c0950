package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Houeta/collection-desk/internal/commerce"
	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/auth"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"github.com/gin-gonic/gin"
)

var errInvalidForm = errors.New("invalid form")

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type filtersForm struct {
	Search string `form:"search"`
	Color  string `form:"color"`
	Sort   string `form:"sort" binding:"omitempty,oneof=none name code"`
}

type moveForm struct {
	From int `form:"from" binding:"required,min=1"`
	To   int `form:"to"   binding:"required,min=1"`
}

func (s *Server) loginPage(c *gin.Context) {
	if _, err := s.sessionFromCookie(c); err == nil {
		c.Redirect(http.StatusFound, "/collections")
		return
	}

	data := loginPage{basePage: basePage{Title: "Log in"}}
	if c.Query("expired") != "" {
		data.Error = "Your session has ended, log in again"
	}
	c.HTML(http.StatusOK, "login.html", data)
}

func (s *Server) login(c *gin.Context) {
	const opn = "server.login"

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", loginPage{
			basePage: basePage{Title: "Log in"},
			Username: form.Username,
			Error:    "Username and password are required",
		})
		return
	}

	session, err := s.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		status, msg := http.StatusBadGateway, editor.Describe(err)
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			status, msg = http.StatusBadRequest, "Username and password are required"
		case errors.Is(err, commerce.ErrInvalidCredentials):
			status, msg = http.StatusUnauthorized, "Invalid username or password"
		default:
			s.log.ErrorContext(c.Request.Context(), "Login failed", "op", opn, "error", err)
		}
		c.HTML(status, "login.html", loginPage{
			basePage: basePage{Title: "Log in"},
			Username: form.Username,
			Error:    msg,
		})
		return
	}

	cookie, err := s.cookies.Cookie(session.ID)
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to sign session cookie", "op", opn, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", errorPage{
			basePage: basePage{Title: "Error"},
			Message:  "Could not start the session",
			Back:     "/login",
		})
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.Redirect(http.StatusSeeOther, "/collections")
}

func (s *Server) loginLimited(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "login.html", loginPage{
		basePage: basePage{Title: "Log in"},
		Error:    "Too many login attempts, try again later",
	})
}

func (s *Server) logout(c *gin.Context) {
	s.endSession(c, currentSession(c))
	c.Redirect(http.StatusSeeOther, "/login")
}

// endSession drops the login, its editing session and the cookie.
func (s *Server) endSession(c *gin.Context, session *models.Session) {
	if err := s.auth.Logout(c.Request.Context(), session.ID); err != nil {
		s.log.WarnContext(c.Request.Context(), "Failed to delete session", "op", "server.endSession", "error", err)
	}
	s.ws.Close(owner(session))
	http.SetCookie(c.Writer, s.cookies.Expired())
}

// relogin handles a token the commerce API no longer accepts.
func (s *Server) relogin(c *gin.Context, session *models.Session) {
	s.endSession(c, session)
	c.Redirect(http.StatusSeeOther, "/login?expired=1")
}

func (s *Server) collections(c *gin.Context) {
	session := currentSession(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	collections, err := s.ws.Collections(c.Request.Context(), session.AccessToken)
	if err != nil {
		if errors.Is(err, commerce.ErrUnauthorized) {
			s.relogin(c, session)
			return
		}
		c.HTML(http.StatusBadGateway, "error.html", errorPage{
			basePage: basePage{Title: "Error", User: session.Username},
			Message:  editor.Describe(err),
			Back:     "/collections",
		})
		return
	}

	c.HTML(http.StatusOK, "collections.html",
		newCollectionsPage(session.Username, collections, page, s.opts.CollectionsPageSize))
}

func (s *Server) edit(c *gin.Context) {
	session := currentSession(c)

	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, "/collections")
		return
	}

	editing, ok := s.ws.Session(owner(session), id)
	if !ok || c.Query("reload") != "" {
		editing, err = s.ws.Open(c.Request.Context(), owner(session), session.AccessToken, id)
		if err != nil {
			s.openFailed(c, session, err)
			return
		}
	}

	c.HTML(http.StatusOK, "edit.html", newEditPage(session.Username, id, editing.View(), c.Query("notice")))
}

func (s *Server) openFailed(c *gin.Context, session *models.Session, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, commerce.ErrUnauthorized):
		s.relogin(c, session)
		return
	case errors.Is(err, editor.ErrCollectionNotFound):
		status = http.StatusNotFound
	default:
		s.log.WarnContext(c.Request.Context(), "Failed to open collection", "op", "server.edit", "error", err)
	}

	c.HTML(status, "error.html", errorPage{
		basePage: basePage{Title: "Error", User: session.Username},
		Message:  editor.Describe(err),
		Back:     "/collections",
	})
}

func (s *Server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", errorPage{
		basePage: basePage{Title: "Not found"},
		Message:  "Page not found",
		Back:     "/collections",
	})
}

type editFunc func(c *gin.Context, editing *editor.Session) error

// editAction runs fn on the caller's editing session and redirects back to the edit page.
func (s *Server) editAction(fn editFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)

		id, err := strconv.Atoi(c.PostForm("id"))
		if err != nil || id <= 0 {
			c.Redirect(http.StatusSeeOther, "/collections")
			return
		}

		editing, ok := s.ws.Session(owner(session), id)
		if !ok {
			c.Redirect(http.StatusSeeOther, editURL(id, editor.Describe(editor.ErrNoSession)))
			return
		}

		err = fn(c, editing)

		var notice string
		switch {
		case err == nil, errors.Is(err, editor.ErrSuperseded):
		case errors.Is(err, commerce.ErrUnauthorized):
			s.relogin(c, session)
			return
		case errors.Is(err, errInvalidForm):
			notice = "The submitted values are invalid"
		case editing.View().State == editor.StateError:
			// the edit page shows the fetch error itself
		default:
			notice = editor.Describe(err)
		}

		c.Redirect(http.StatusSeeOther, editURL(id, notice))
	}
}

func (s *Server) applyFilters(c *gin.Context, editing *editor.Session) error {
	var form filtersForm
	if err := c.ShouldBind(&form); err != nil {
		return errInvalidForm
	}

	key, err := models.ParseSortKey(form.Sort)
	if err != nil {
		return errInvalidForm
	}

	editing.SetSearch(strings.TrimSpace(form.Search))
	editing.SetSort(key)

	return editing.SetColor(c.Request.Context(), form.Color)
}

func (s *Server) clearFilters(c *gin.Context, editing *editor.Session) error {
	return editing.ClearFilters(c.Request.Context())
}

func (s *Server) move(c *gin.Context, editing *editor.Session) error {
	var form moveForm
	if err := c.ShouldBind(&form); err != nil {
		return errInvalidForm
	}
	return editing.Move(form.From-1, form.To-1)
}

func (s *Server) cancel(_ *gin.Context, editing *editor.Session) error {
	return editing.Cancel()
}

func (s *Server) requestSave(_ *gin.Context, editing *editor.Session) error {
	return editing.RequestSave()
}

func (s *Server) confirmSave(c *gin.Context, editing *editor.Session) error {
	return editing.ConfirmSave(c.Request.Context())
}

func (s *Server) dismissSave(_ *gin.Context, editing *editor.Session) error {
	editing.DismissSave()
	return nil
}
