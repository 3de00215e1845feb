// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is the full process configuration.
type Config struct {
	HTTP   HTTPConfig
	Store  StoreConfig
	Log    LogConfig
	Notify NotifyConfig

	// Locale overrides LC_ALL/LANG for the default display unit.
	Locale string `env:"LOCALE" env-default:""`
	// SessionPurgeCron schedules removal of expired sessions.
	SessionPurgeCron string `env:"SESSION_PURGE_CRON" env-default:"@hourly"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Addr string `env:"ADDR" env-default:":8080"`
}

// StoreConfig selects and locates the storage backend.
type StoreConfig struct {
	Kind        string `env:"STORE" env-default:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" env-default:"data/weighttrack.db"`
	DatabaseURL string `env:"DATABASE_URL" env-default:""`
}

// LogConfig sets the log level and output format.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `env:"LOG_PRETTY" env-default:"false"`
}

// NotifyConfig configures goal-reached delivery.
type NotifyConfig struct {
	Enabled      bool   `env:"NOTIFY_ENABLED" env-default:"false"`
	AlertAddress string `env:"ALERT_ADDRESS" env-default:""`
	GatewayURL   string `env:"SMS_GATEWAY_URL" env-default:""`
	GatewayToken string `env:"SMS_GATEWAY_TOKEN" env-default:""`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Store.Kind = strings.ToLower(strings.TrimSpace(c.Store.Kind))
	switch c.Store.Kind {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE=postgres")
		}
	default:
		return fmt.Errorf("STORE must be sqlite, postgres or memory, got %q", c.Store.Kind)
	}
	if _, err := cron.ParseStandard(c.SessionPurgeCron); err != nil {
		return fmt.Errorf("SESSION_PURGE_CRON: %w", err)
	}
	return nil
}
