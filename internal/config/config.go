package config

import "time"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Ledger   LedgerConfig   `mapstructure:"ledger" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the postgres connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LedgerConfig points at the remote ledger service that executes
// account movements.
type LedgerConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}

// AuthConfig contains the settings used to verify caller tokens.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// EventsConfig configures the outbox relay. The relay is disabled when
// RedisAddr is empty.
type EventsConfig struct {
	RedisAddr string `mapstructure:"redis_addr"`
	Channel   string `mapstructure:"channel"`
}
