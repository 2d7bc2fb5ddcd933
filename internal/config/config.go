// Package config loads process settings from the environment.
package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/bun-dungeon/internal/errors"
)

// Config is the process configuration. Command line flags override it.
type Config struct {
	// RedisAddr selects Redis session storage. Empty keeps sessions in memory.
	RedisAddr string `env:"BUN_DUNGEON_REDIS_ADDR"`
	// Seed fixes the random source. Zero rolls dice.
	Seed       uint64        `env:"BUN_DUNGEON_SEED" envDefault:"0"`
	SessionTTL time.Duration `env:"BUN_DUNGEON_SESSION_TTL" envDefault:"24h"`
	LogLevel   slog.Level    `env:"BUN_DUNGEON_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.InvalidArgumentf("parse env: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values env parsing cannot.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.SessionTTL <= 0 {
		vb.InvalidField("SessionTTL", "must be positive")
	}
	return vb.Build()
}

// UseRedis reports whether sessions go to Redis.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}
