// Package config loads calculator settings from defaults, an optional TOML
// file and CALC_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	HTTP    HTTPConfig    `toml:"http"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
	OTLP    OTLPConfig    `toml:"otlp"`
	TUI     TUIConfig     `toml:"tui"`
}

// HTTPConfig holds API server settings
type HTTPConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// SessionConfig bounds the per-client engine store
type SessionConfig struct {
	TTL           Duration `toml:"ttl"`
	SweepInterval Duration `toml:"sweep_interval"`
	MaxSessions   int      `toml:"max_sessions"`
}

// LogConfig selects the zap level and, for the TUI, an output file
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// OTLPConfig toggles trace, metric and log export
type OTLPConfig struct {
	Enabled bool `toml:"enabled"`
}

// TUIConfig holds terminal UI settings
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration{5 * time.Second},
		},
		Session: SessionConfig{
			TTL:           Duration{30 * time.Minute},
			SweepInterval: Duration{time.Minute},
			MaxSessions:   10000,
		},
		Log: LogConfig{
			Level: "info",
			File:  "calc.log",
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// Load builds the configuration. An empty path falls back to CALC_CONFIG; a
// missing file named only by the environment is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CALC_CONFIG")
	}

	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr must not be empty")
	}
	if c.Session.TTL.Duration <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Session.SweepInterval.Duration <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive, got %s", c.Session.SweepInterval)
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be positive, got %d", c.Session.MaxSessions)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CALC_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("CALC_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CALC_SESSION_TTL: %w", err)
		}
		c.Session.TTL.Duration = d
	}
	if v := os.Getenv("CALC_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CALC_MAX_SESSIONS: %w", err)
		}
		c.Session.MaxSessions = n
	}
	if v := os.Getenv("CALC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CALC_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("CALC_OTLP_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CALC_OTLP_ENABLED: %w", err)
		}
		c.OTLP.Enabled = b
	}
	return nil
}
