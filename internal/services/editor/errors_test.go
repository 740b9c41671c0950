package editor_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Houeta/collection-desk/internal/commerce"
	"github.com/Houeta/collection-desk/internal/services/editor"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"sentinel", fmt.Errorf("wrap: %w", editor.ErrInvalidPosition), "That position is not in the displayed list"},
		{"unauthorized", &commerce.StatusError{StatusCode: http.StatusUnauthorized}, "You need to log in again"},
		{"api message", &commerce.APIError{Status: 200, Message: "no such collection"}, "no such collection"},
		{"status", &commerce.StatusError{StatusCode: http.StatusBadGateway}, "HTTP error, status: 502"},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), "The commerce API did not answer in time"},
		{"unknown", errors.New("boom"), "An unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, editor.Describe(tt.err))
		})
	}
}
