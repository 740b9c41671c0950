package commerce

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is matched by transport errors caused by a missing or rejected bearer token.
	ErrUnauthorized = errors.New("commerce api rejected the access token")
	// ErrInvalidCredentials is returned when the login endpoint does not issue a token.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// StatusError is a non-2xx transport response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code error: [%d] %s", e.StatusCode, e.Status)
}

// Is makes 401 and 403 responses match ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// APIError is a 2xx transport response that carries an application level failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error [%d]: %s", e.Status, e.Message)
	}
	return "api error: " + e.Message
}
