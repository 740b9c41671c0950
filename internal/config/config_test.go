package config_test

import (
	"testing"
	"time"

	"github.com/Houeta/collection-desk/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - empty required env variable", func(t *testing.T) {
		t.Setenv("CD_SESSION_SECRET", "")

		assert.PanicsWithError(t, config.ErrEmptySecret.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CD_SESSION_SECRET", "0123456789abcdef0123456789abcdef")

		cfg := config.MustLoad()

		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "https://maestro-api-dev.secil.biz", cfg.API.URL)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
		assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
		assert.Equal(t, 10*time.Minute, cfg.Session.CleanupInterval)
		assert.Equal(t, "10-M", cfg.Session.LoginRate)
		assert.Equal(t, 18, cfg.Editor.PageSize)
		assert.Equal(t, 5, cfg.Editor.CollectionsPageSize)
		assert.Equal(t, "tr", cfg.Locale)
		assert.Empty(t, cfg.Tg.Token)
	})

	t.Run("success", func(t *testing.T) {
		t.Setenv("CD_ENV", "local")
		t.Setenv("CD_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("CD_API_URL", "https://api.example.com")
		t.Setenv("CD_API_TIMEOUT", "3s")
		t.Setenv("CD_STORAGE_PATH", "some/path/to/db")
		t.Setenv("CD_PAGE_SIZE", "24")
		t.Setenv("CD_TELEGRAM_TOKEN", "telegramToken")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "https://api.example.com", cfg.API.URL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, "some/path/to/db", cfg.StoragePath)
		assert.Equal(t, 24, cfg.Editor.PageSize)
		assert.Equal(t, 15*time.Second, cfg.Tg.Timeout)
		assert.Equal(t, "telegramToken", cfg.Tg.Token)
	})
}
