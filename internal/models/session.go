package models

import "time"

// Tokens are the credentials issued by the remote login endpoint.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Session is an authenticated user session.
type Session struct {
	ID           string
	Username     string
	AccessToken  string
	RefreshToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Header holds the values shown in the page header of an editing session.
type Header struct {
	CollectionName string
	ProductCount   int
}
