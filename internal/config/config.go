// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full server configuration.
type Config struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Telegram bot token used to verify init data signatures. Required
	// unless AuthDisabled is set for local development.
	BotToken     string `env:"BOT_TOKEN"`
	AuthDisabled bool   `env:"AUTH_DISABLED" envDefault:"false"`

	// Telegram user IDs granted dungeon master access on first login.
	DMUserIDs []int64 `env:"DM_USER_IDS" envSeparator:","`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that env parsing cannot express.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.BotToken == "" && !c.AuthDisabled {
		return fmt.Errorf("BOT_TOKEN is required unless AUTH_DISABLED is set")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	return nil
}

// Address returns the host:port the HTTP server binds to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDM reports whether a Telegram user ID is configured as a dungeon master.
func (c *Config) IsDM(userID int64) bool {
	for _, id := range c.DMUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
