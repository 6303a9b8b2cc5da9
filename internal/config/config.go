// Package config provides configuration loading for the creaturemap server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	NATS     NATSConfig     `yaml:"nats"`
	Location LocationConfig `yaml:"location"`
	Draft    DraftConfig    `yaml:"draft"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	// Port is the TCP port for Connect, /metrics and /healthz (default: 8080)
	Port int `yaml:"port"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig configures the SQLite store
type DatabaseConfig struct {
	// Path is the SQLite file (default: ./data/creatures.db)
	Path string `yaml:"path"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// AuthConfig configures account authentication
type AuthConfig struct {
	// Enabled requires a bearer token on every RPC except Register and Login.
	// When disabled all requests share the "user" preferences row.
	Enabled bool `yaml:"enabled"`
	// JWTSecret signs session tokens. Required when Enabled.
	JWTSecret string `yaml:"jwt_secret"`
	// TokenDuration is how long an issued token stays valid
	TokenDuration time.Duration `yaml:"token_duration"`
}

// NATSConfig configures the optional change mirror
type NATSConfig struct {
	// URL is the NATS server URL (empty = no mirror)
	URL string `yaml:"url"`
	// SubjectPrefix prefixes every mirrored subject
	SubjectPrefix string `yaml:"subject_prefix"`
}

// LocationConfig configures the location feed
type LocationConfig struct {
	// Interval is the fastest accepted update per device
	Interval time.Duration `yaml:"interval"`
}

// DraftConfig configures draft sessions
type DraftConfig struct {
	// SessionTTL is how long an idle draft session is kept
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./data/creatures.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Enabled:       false,
			TokenDuration: 24 * time.Hour,
		},
		NATS: NATSConfig{
			SubjectPrefix: "creaturemap",
		},
		Location: LocationConfig{
			Interval: 15 * time.Second,
		},
		Draft: DraftConfig{
			SessionTTL: 30 * time.Minute,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
		}
		if c.Auth.TokenDuration <= 0 {
			return fmt.Errorf("auth.token_duration must be positive")
		}
	}
	if c.Location.Interval < 0 {
		return fmt.Errorf("location.interval must not be negative")
	}
	if c.Draft.SessionTTL <= 0 {
		return fmt.Errorf("draft.session_ttl must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads path when it is non-empty, falls back to defaults otherwise,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		var err error
		if config, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from DB_PATH, PORT, LOG_LEVEL, JWT_SECRET and
// NATS_URL. Setting JWT_SECRET also enables auth.
func (c *Config) ApplyEnv() error {
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
		c.Auth.Enabled = true
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
