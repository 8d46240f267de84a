// Package config loads application configuration from the environment
// (optionally via a .env file) into an explicit struct that callers pass
// around. There is no package-level mutable state.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix scopes which environment variables are read.
// LASERSHOP_DATABASE_HOST maps to the "database.host" key.
const envPrefix = "LASERSHOP_"

// Config is the root configuration for the demo.
type Config struct {
	Env      string         `koanf:"env" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
}

// DatabaseConfig holds PostgreSQL connection parameters and pool tuning.
//
// Password deliberately has no default: it is sourced from the environment
// (or a .env file) only, never from a literal fallback.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
}

// Load reads LASERSHOP_* environment variables on top of defaults,
// validates the result, and returns the config.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// envKey turns LASERSHOP_DATABASE_SSL_MODE into "database.ssl_mode".
// Only the first underscore becomes a nesting delimiter so multi-word
// leaf keys survive.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
}

func defaults() *Config {
	return &Config{
		Env: "local",
		Database: DatabaseConfig{
			Host:            "127.0.0.1",
			Port:            5432,
			User:            "postgres",
			Name:            "laser_shop",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
	}
}
