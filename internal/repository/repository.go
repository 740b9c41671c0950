package repository

import "errors"

var (
	// ErrSessionNotFound is returned when no session is stored under the requested id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrChatNotBound is returned when a chat has no session attached.
	ErrChatNotBound = errors.New("chat is not bound to a session")
)
