// Package config loads the engine configuration from a yaml file via
// viper, with working defaults so a missing file still yields a usable
// setup.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// StorageConfig selects and configures the deck repository backend.
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"` // badger or postgres
	Badger   BadgerConfig   `mapstructure:"badger"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// BadgerConfig configures the embedded store.
type BadgerConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig configures the Postgres store.
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// CatalogConfig configures the card catalog client.
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PricingConfig configures the pricing oracle client.
type PricingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EngineConfig tunes the deck engine itself.
type EngineConfig struct {
	HistoryLimit      int `mapstructure:"history_limit"`
	ImportConcurrency int `mapstructure:"import_concurrency"`
}

// Load reads configuration from the given path. A missing file is not
// an error; defaults apply. A malformed file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("storage.backend", "badger")
	v.SetDefault("storage.badger.path", "data/decks")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.timeout", 15*time.Second)
	v.SetDefault("pricing.base_url", "")
	v.SetDefault("pricing.timeout", 15*time.Second)
	v.SetDefault("engine.history_limit", 50)
	v.SetDefault("engine.import_concurrency", 8)

	// A missing file falls back to defaults; a malformed one is a
	// real configuration problem.
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "badger", "postgres":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "postgres" && c.Storage.Postgres.URL == "" {
		return fmt.Errorf("storage backend is postgres but no url is configured")
	}
	return nil
}
