// Package config loads the recstore CLI configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the complete CLI configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Log     LogConfig     `yaml:"log"`
	OTP     OTPConfig     `yaml:"otp"`
	History HistoryConfig `yaml:"history"`
}

// DataConfig selects where the store persists.
type DataConfig struct {
	Path       string `yaml:"path"`        // JSON document
	Backend    string `yaml:"backend"`     // json | sqlite
	SQLitePath string `yaml:"sqlite_path"` // SQLite snapshot
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`   // debug | info | warn | error
	SeqURL string `yaml:"seq_url"` // optional Seq server
}

// OTPConfig controls verification codes.
type OTPConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// HistoryConfig controls history listings.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Data: DataConfig{
			Path:       "data/db.json",
			Backend:    BackendJSON,
			SQLitePath: "data/recstore.db",
		},
		Log:     LogConfig{Level: "info"},
		OTP:     OTPConfig{TTL: 10 * time.Minute},
		History: HistoryConfig{Limit: 50},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults fills keys the file set to empty values.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Data.Path == "" {
		c.Data.Path = def.Data.Path
	}
	if c.Data.Backend == "" {
		c.Data.Backend = def.Data.Backend
	}
	if c.Data.SQLitePath == "" {
		c.Data.SQLitePath = def.Data.SQLitePath
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = def.OTP.TTL
	}
	if c.History.Limit <= 0 {
		c.History.Limit = def.History.Limit
	}
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	var errs []error
	switch c.Data.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("data.backend: unknown backend %q (want %s or %s)", c.Data.Backend, BackendJSON, BackendSQLite))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}
