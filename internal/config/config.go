package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`

	DBHost     string `env:"DATABASE_HOST" envDefault:"localhost"`
	DBPort     string `env:"DATABASE_PORT" envDefault:"5432"`
	DBUser     string `env:"DATABASE_USER" envDefault:"postgres"`
	DBPassword string `env:"DATABASE_PASSWORD" envDefault:"password"`
	DBName     string `env:"DATABASE_NAME" envDefault:"wikichu"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"wikichu.db"`

	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// Shared with the identity provider; used only to verify tokens.
	AuthSecret string `env:"AUTH_SECRET" envDefault:"mysecret"`

	// Empty disables the purchase idempotency cache.
	RedisAddr string `env:"REDIS_ADDR"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
