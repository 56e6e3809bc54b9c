package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment names accepted by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultSecretKey is used when SECRET_KEY is not provided.
const DefaultSecretKey = "dev-key-for-development"

// DefaultDevDatabaseURL points development runs at a local SQLite file.
const DefaultDevDatabaseURL = "sqlite://todo_app.db"

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// Env selects the configuration profile ("development" or "production").
	Env string `mapstructure:"env" yaml:"env"`

	// DatabaseURL is the connection string. Its scheme picks the driver
	// (sqlite://, file:, postgres://, postgresql://).
	DatabaseURL string `mapstructure:"database_url" yaml:"database_url"`

	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	Debug     bool   `mapstructure:"debug" yaml:"debug"`

	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	// StaticDir holds the frontend bundle served for non-API paths.
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`

	// LogLevel overrides the level derived from Debug when set.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	MetricsEnabled bool `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
}

// Addr returns the host:port pair the HTTP server listens on.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EffectiveLogLevel returns LogLevel, or a level derived from Debug.
func (c *AppConfig) EffectiveLogLevel() string {
	if c.LogLevel != "" {
		return strings.ToLower(c.LogLevel)
	}
	if c.Debug {
		return "debug"
	}
	return "info"
}

// UsesDefaultSecret reports whether SECRET_KEY was left at its default.
func (c *AppConfig) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// configKeys maps viper keys to the environment variables that override
// them, in order of precedence.
var configKeys = map[string][]string{
	"env":             {"APP_ENV", "FLASK_ENV"},
	"database_url":    {"DATABASE_URL"},
	"secret_key":      {"SECRET_KEY"},
	"debug":           {"DEBUG"},
	"host":            {"HOST"},
	"port":            {"PORT"},
	"static_dir":      {"STATIC_DIR"},
	"log_level":       {"LOG_LEVEL"},
	"metrics_enabled": {"METRICS_ENABLED"},
}

// LoadConfig reads configuration from an optional YAML file at path and
// from the environment, which takes precedence. An empty path or a missing
// file falls back to environment variables and defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()

	for key, envs := range configKeys {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("secret_key", DefaultSecretKey)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 5000)
	v.SetDefault("static_dir", "../frontend")
	v.SetDefault("metrics_enabled", true)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			var pathErr *os.PathError
			if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	// Profile-dependent defaults, applied once the environment is known.
	env := strings.ToLower(v.GetString("env"))
	switch env {
	case EnvDevelopment:
		v.SetDefault("debug", true)
		v.SetDefault("database_url", DefaultDevDatabaseURL)
	case EnvProduction:
		v.SetDefault("debug", false)
	default:
		return nil, fmt.Errorf("unknown environment %q", env)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Env = env

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *AppConfig) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set in %s", c.Env)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
