// Package config loads runtime settings from VICTIMS_-prefixed environment
// variables (optionally seeded from a .env file) and validates them so the
// process fails fast on bad configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a .env file into the process environment if one exists.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from variable names before mapping them to keys,
// e.g. VICTIMS_DATABASE_PATH -> database_path.
const EnvPrefix = "VICTIMS_"

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the root configuration object for the application.
type Config struct {
	Port         string `koanf:"port" validate:"required,numeric"`
	DatabasePath string `koanf:"database_path" validate:"required"`
	// StoreBackend selects where victims live. Users are always kept in SQLite.
	StoreBackend string `koanf:"store_backend" validate:"required,oneof=sqlite memory"`
	JWTSecret    string `koanf:"jwt_secret" validate:"required,min=32"`
	JWTIssuer    string `koanf:"jwt_issuer" validate:"required"`
	CookieSecure bool   `koanf:"cookie_secure"`
	BcryptCost   int    `koanf:"bcrypt_cost" validate:"min=4,max=14"`
	LogLevel     string `koanf:"log_level" validate:"oneof=debug info warn error"`
	// LoginRate and LoginBurst configure the credential endpoint token bucket.
	LoginRate  float64 `koanf:"login_rate" validate:"gt=0"`
	LoginBurst float64 `koanf:"login_burst" validate:"gte=1"`
}

// Default returns a Config populated with every optional default.
// JWTSecret has no default.
func Default() *Config {
	return &Config{
		Port:         "8080",
		DatabasePath: "victims.db",
		StoreBackend: BackendSQLite,
		JWTIssuer:    "victim-store",
		// Default to secure cookies; disable only for local development.
		CookieSecure: true,
		BcryptCost:   12,
		LogLevel:     "info",
		LoginRate:    0.2,
		LoginBurst:   5,
	}
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}))
}

func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
