package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName is the name of the session cookie.
const CookieName = "collection_desk_session"

// CookieCodec signs the session id stored in the session cookie.
type CookieCodec struct {
	sc     *securecookie.SecureCookie
	maxAge int
	secure bool
}

// NewCookieCodec creates a codec signing with secret. Cookies live for ttl.
func NewCookieCodec(secret string, ttl time.Duration, secure bool) *CookieCodec {
	maxAge := int(ttl.Seconds())

	sc := securecookie.New([]byte(secret), nil)
	sc.MaxAge(maxAge)

	return &CookieCodec{sc: sc, maxAge: maxAge, secure: secure}
}

// Cookie returns the cookie carrying sessionID.
func (c *CookieCodec) Cookie(sessionID string) (*http.Cookie, error) {
	value, err := c.sc.Encode(CookieName, sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth.Cookie: %w", err)
	}

	return c.cookie(value, c.maxAge), nil
}

// Expired returns a cookie that makes the browser drop the session cookie.
func (c *CookieCodec) Expired() *http.Cookie {
	return c.cookie("", -1)
}

// SessionID verifies the cookie value and returns the session id it carries.
func (c *CookieCodec) SessionID(value string) (string, error) {
	var id string
	if err := c.sc.Decode(CookieName, value, &id); err != nil {
		return "", fmt.Errorf("auth.SessionID: %w", err)
	}
	return id, nil
}

func (c *CookieCodec) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
