// Package config loads service configuration from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every runtime setting for both binaries.
type Config struct {
	Port      string `env:"PORT,          default=8080"`
	Env       string `env:"ENV,           default=development"`
	LogLevel  string `env:"LOG_LEVEL,     default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	// RunMigrations gates AutoMigrate on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS, default=false"`

	// NotifyQueueSize bounds the completion-notification buffer.
	NotifyQueueSize int `env:"NOTIFY_QUEUE_SIZE, default=256"`

	// RatePerMinute and RateBurst bound per-user request rates on
	// authenticated routes.
	RatePerMinute int `env:"RATE_PER_MINUTE, default=120"`
	RateBurst     int `env:"RATE_BURST,      default=30"`

	DB    DBConfig
	Redis RedisConfig
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string        `env:"DB_HOST,     default=localhost"`
	Port     string        `env:"DB_PORT,     default=5432"`
	User     string        `env:"DB_USER,     default=postgres"`
	Password string        `env:"DB_PASSWORD"`
	Name     string        `env:"DB_NAME,     default=todo"`
	SSLMode  string        `env:"DB_SSLMODE,  default=disable"`
	Timeout  time.Duration `env:"DB_CONNECT_TIMEOUT, default=60s"`
}

// DSN renders the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig holds the Redis connection settings. An empty Addr disables
// Redis and falls the revocation store back to process memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
