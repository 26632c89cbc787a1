// server/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const devSessionSecret = "calmrush-dev-secret"

type Config struct {
	Port string
	Env  string

	Storage     string
	DatabaseURL string
	SQLitePath  string

	SessionSecret string

	LogLevel  string
	LogFormat string
	LogFile   string

	AllowedOrigins string
	MigrateOnStart bool
}

func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port: getEnv("CALMRUSH_PORT", "8080"),
		Env:  getEnv("CALMRUSH_ENV", EnvDevelopment),

		Storage:     getEnv("CALMRUSH_STORAGE", StoragePostgres),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("CALMRUSH_SQLITE_PATH", "calmrush.db"),

		SessionSecret: os.Getenv("CALMRUSH_SESSION_SECRET"),

		LogLevel:  getEnv("CALMRUSH_LOG_LEVEL", "info"),
		LogFormat: getEnv("CALMRUSH_LOG_FORMAT", ""),
		LogFile:   os.Getenv("CALMRUSH_LOG_FILE"),

		AllowedOrigins: getEnv("CALMRUSH_ALLOWED_ORIGINS", "*"),
		MigrateOnStart: getBoolEnv("CALMRUSH_MIGRATE_ON_START", true),
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.Production() {
			cfg.LogFormat = "json"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("CALMRUSH_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}

	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for postgres storage")
		}
	case StorageSQLite:
	default:
		return fmt.Errorf("CALMRUSH_STORAGE must be %q or %q, got %q", StoragePostgres, StorageSQLite, c.Storage)
	}

	if c.SessionSecret == "" {
		if c.Production() {
			return errors.New("CALMRUSH_SESSION_SECRET must be set in production")
		}
		c.SessionSecret = devSessionSecret
	}
	return nil
}
