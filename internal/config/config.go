// Package config loads runtime settings from ANNOCHESS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the commands read.
type Config struct {
	Addr string `env:"ANNOCHESS_ADDR" envDefault:":8080"`

	// Storage. DatabaseURL selects Postgres; otherwise SQLitePath is used.
	DatabaseURL string `env:"ANNOCHESS_DATABASE_URL"`
	SQLitePath  string `env:"ANNOCHESS_SQLITE_PATH" envDefault:"annochess.db"`

	// Optional Redis cache for the listing endpoint.
	RedisURL        string        `env:"ANNOCHESS_REDIS_URL"`
	CatalogCacheTTL time.Duration `env:"ANNOCHESS_CATALOG_CACHE_TTL" envDefault:"5m"`

	// Where viewers fetch the catalog from. Empty means the server's own store.
	CatalogURL   string        `env:"ANNOCHESS_CATALOG_URL"`
	FetchTimeout time.Duration `env:"ANNOCHESS_FETCH_TIMEOUT" envDefault:"10s"`

	SessionIdle    time.Duration `env:"ANNOCHESS_SESSION_IDLE" envDefault:"24h"`
	BoardCacheSize int           `env:"ANNOCHESS_BOARD_CACHE_SIZE" envDefault:"256"`
	SquareSize     int           `env:"ANNOCHESS_SQUARE_SIZE" envDefault:"56"`

	LogLevel    string `env:"ANNOCHESS_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"ANNOCHESS_LOG_FORMAT" envDefault:"console"`
	MessagesDir string `env:"ANNOCHESS_MESSAGES_DIR"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ANNOCHESS_ADDR must not be empty"))
	}
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		errs = append(errs, errors.New("one of ANNOCHESS_DATABASE_URL or ANNOCHESS_SQLITE_PATH is required"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("ANNOCHESS_FETCH_TIMEOUT must be positive"))
	}
	if c.SessionIdle <= 0 {
		errs = append(errs, errors.New("ANNOCHESS_SESSION_IDLE must be positive"))
	}
	if c.BoardCacheSize <= 0 {
		errs = append(errs, errors.New("ANNOCHESS_BOARD_CACHE_SIZE must be positive"))
	}
	if c.SquareSize < 16 {
		errs = append(errs, errors.New("ANNOCHESS_SQUARE_SIZE must be at least 16"))
	}
	return errors.Join(errs...)
}
