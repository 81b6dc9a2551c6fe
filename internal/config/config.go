// Package config loads server configuration from a TOML file with
// sensible defaults for local development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Server contains bind address and persistence configuration.
type Server struct {
	Bind            string `toml:"bind"`
	DatabasePath    string `toml:"database_path"`
	JWTSecret       string `toml:"jwt_secret"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
}

// Quotes contains configuration for the market-data provider.
type Quotes struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Config is the root configuration for the finnet server.
type Config struct {
	Server Server `toml:"server"`
	Quotes Quotes `toml:"quotes"`
}

// Default returns the built-in development configuration.
func Default() Config {
	return Config{
		Server: Server{
			Bind:            ":8080",
			DatabasePath:    "./data/finnet.db",
			JWTSecret:       "finnet-dev-secret",
			SessionTTLHours: 24,
		},
		Quotes: Quotes{
			BaseURL:        "https://query1.finance.yahoo.com",
			TimeoutSeconds: 10,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SessionTTL returns the configured session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLHours) * time.Hour
}

// QuoteTimeout returns the configured provider request timeout.
func (c Config) QuoteTimeout() time.Duration {
	return time.Duration(c.Quotes.TimeoutSeconds) * time.Second
}

func (c Config) validate() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	if c.Server.DatabasePath == "" {
		return errors.New("server.database_path must not be empty")
	}
	if c.Server.JWTSecret == "" {
		return errors.New("server.jwt_secret must not be empty")
	}
	if c.Server.SessionTTLHours <= 0 {
		return errors.New("server.session_ttl_hours must be positive")
	}
	if c.Quotes.BaseURL == "" {
		return errors.New("quotes.base_url must not be empty")
	}
	if c.Quotes.TimeoutSeconds <= 0 {
		return errors.New("quotes.timeout_seconds must be positive")
	}
	return nil
}
