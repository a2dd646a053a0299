package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// StoreBackend selects the record store: file, memory, postgres, redis.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	LogStorePath string `env:"LOG_STORE_PATH" envDefault:"data/http-log.ndjson"`
	ExportDir    string `env:"EXPORT_DIR" envDefault:"data/exports"`
	PostgresURL  string `env:"POSTGRES_URL"`
	RedisAddr    string `env:"REDIS_ADDR"`

	// UpstreamBaseURL is the logistics backend origin. It is used both for
	// proxying and for matching outgoing records into the backend scope of
	// the synthesized API document.
	UpstreamBaseURL string `env:"UPSTREAM_BASE_URL"`
	AuthCookieName  string `env:"AUTH_COOKIE_NAME" envDefault:"sid"`
	AuthRefreshPath string `env:"AUTH_REFRESH_PATH" envDefault:"/auth/refresh"`
	AuthCredential  string `env:"AUTH_CREDENTIAL"`
	ServiceAccount  string `env:"SERVICE_ACCOUNT" envDefault:"dashboard"`

	ConsoleRateRPS   float64 `env:"CONSOLE_RATE_RPS" envDefault:"10"`
	ConsoleRateBurst int     `env:"CONSOLE_RATE_BURST" envDefault:"20"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
