package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/sizer/form"
	"github.com/rustyeddy/sizer/risk"
	"gopkg.in/yaml.v3"
)

// Config represents the complete sizer configuration
type Config struct {
	Defaults DefaultsConfig `json:"defaults" yaml:"defaults"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// DefaultsConfig holds the values a fresh form starts with. They are kept
// as text because that is what the form edits.
type DefaultsConfig struct {
	Capital     string `json:"capital" yaml:"capital"`
	RiskPercent string `json:"risk_percent" yaml:"risk_percent"`
	Leverage    string `json:"leverage" yaml:"leverage"`
	Direction   string `json:"direction" yaml:"direction"`
}

// ServerConfig contains web server parameters
type ServerConfig struct {
	Addr         string `json:"addr" yaml:"addr"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
	ReadTimeout  string `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout string `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`

	// API rate limit in requests per second; 0 disables it.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
	Burst     int     `json:"burst" yaml:"burst"`
}

// JournalConfig contains plan journaling parameters
type JournalConfig struct {
	Type      string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	PlansFile string `json:"plans_file,omitempty" yaml:"plans_file,omitempty"`
}

// Environment variables that override file settings.
const (
	EnvAddr      = "SIZER_ADDR"
	EnvLogLevel  = "SIZER_LOG_LEVEL"
	EnvJournalDB = "SIZER_JOURNAL_DB"
)

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path when it is set, otherwise starts from Default. A .env
// file in the working directory and the SIZER_* variables are applied on
// top.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv(EnvJournalDB); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := risk.ParseDirection(c.Defaults.Direction); err != nil {
		return fmt.Errorf("defaults.direction: %w", err)
	}
	if !positiveOrEmpty(c.Defaults.Capital) {
		return fmt.Errorf("defaults.capital must be a positive number")
	}
	if !positiveOrEmpty(c.Defaults.RiskPercent) {
		return fmt.Errorf("defaults.risk_percent must be a positive number")
	}
	if c.Defaults.Leverage != "" {
		if n, ok := form.ParseInt(c.Defaults.Leverage); !ok || n <= 0 {
			return fmt.Errorf("defaults.leverage must be a positive integer")
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, _, err := c.Server.Timeouts(); err != nil {
		return err
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1 when rate_limit is set")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.PlansFile == "" {
			return fmt.Errorf("journal plans_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Inputs returns the form defaults as raw calculator inputs.
func (d DefaultsConfig) Inputs() form.RawInputs {
	dir, _ := risk.ParseDirection(d.Direction)
	return form.RawInputs{
		Capital:     d.Capital,
		RiskPercent: d.RiskPercent,
		Leverage:    d.Leverage,
		Direction:   dir,
	}
}

// Timeouts parses the read and write timeouts. Empty means no timeout.
func (s ServerConfig) Timeouts() (read, write time.Duration, err error) {
	if s.ReadTimeout != "" {
		if read, err = time.ParseDuration(s.ReadTimeout); err != nil {
			return 0, 0, fmt.Errorf("server.read_timeout: %w", err)
		}
	}
	if s.WriteTimeout != "" {
		if write, err = time.ParseDuration(s.WriteTimeout); err != nil {
			return 0, 0, fmt.Errorf("server.write_timeout: %w", err)
		}
	}
	return read, write, nil
}

func positiveOrEmpty(s string) bool {
	if s == "" {
		return true
	}
	v := form.ParseFloat(s)
	return !math.IsNaN(v) && v > 0
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	raw := form.DefaultInputs()
	return &Config{
		Defaults: DefaultsConfig{
			Capital:     raw.Capital,
			RiskPercent: raw.RiskPercent,
			Leverage:    raw.Leverage,
			Direction:   raw.Direction.String(),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			LogLevel:     "info",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
			RateLimit:    20,
			Burst:        40,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
