package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptySecret = errors.New(
	"error getting CD_SESSION_SECRET: variable not specified or contains an empty string",
)

type Config struct {
	Env         string // Env is the current environment: local, development, production.
	HTTPAddr    string
	StoragePath string
	Locale      string
	API         API
	Session     Session
	Editor      Editor
	Tg          Telegram
}

// API describes the remote commerce API.
type API struct {
	URL     string
	Timeout time.Duration
}

type Session struct {
	Secret          string        // Secret signs the session cookie.
	TTL             time.Duration // TTL is how long a login stays valid.
	CleanupInterval time.Duration
	LoginRate       string // LoginRate is a limiter formatted rate, e.g. "10-M".
}

type Editor struct {
	PageSize            int // PageSize is the product page size requested from the API.
	CollectionsPageSize int
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token. Empty disables the bot.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("CD")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("STORAGE_PATH", "collection-desk.db")
	viper.SetDefault("LOCALE", "tr")
	viper.SetDefault("API_URL", "https://maestro-api-dev.secil.biz")
	viper.SetDefault("API_TIMEOUT", "15s")
	viper.SetDefault("SESSION_TTL", "12h")
	viper.SetDefault("SESSION_CLEANUP_INTERVAL", "10m")
	viper.SetDefault("LOGIN_RATE", "10-M")
	viper.SetDefault("PAGE_SIZE", 18)
	viper.SetDefault("COLLECTIONS_PAGE_SIZE", 5)
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	if viper.GetString("SESSION_SECRET") == "" {
		panic(ErrEmptySecret)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		HTTPAddr:    viper.GetString("HTTP_ADDR"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		Locale:      viper.GetString("LOCALE"),
		API: API{
			URL:     viper.GetString("API_URL"),
			Timeout: viper.GetDuration("API_TIMEOUT"),
		},
		Session: Session{
			Secret:          viper.GetString("SESSION_SECRET"),
			TTL:             viper.GetDuration("SESSION_TTL"),
			CleanupInterval: viper.GetDuration("SESSION_CLEANUP_INTERVAL"),
			LoginRate:       viper.GetString("LOGIN_RATE"),
		},
		Editor: Editor{
			PageSize:            viper.GetInt("PAGE_SIZE"),
			CollectionsPageSize: viper.GetInt("COLLECTIONS_PAGE_SIZE"),
		},
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}
}
