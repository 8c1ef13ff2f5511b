// Package config loads TipCalc runtime settings from defaults, an optional
// YAML file and environment variables, in that order of precedence.
//
// Environment variables:
//
//	TIPCALC_DB_PATH:           SQLite database path (default: ./data/tipcalc.db)
//	TIPCALC_STORAGE:           sqlite or memory (default: sqlite)
//	TIPCALC_LOCALE:            BCP 47 locale tag (default: en-US)
//	TIPCALC_METRICS_NAMESPACE: Prometheus namespace (default: tipcalc)
//	LOG_LEVEL:                 debug, info, warn, error (default: info)
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StorageDriver selects the durable preference backend.
type StorageDriver string

const (
	// DriverSQLite stores preferences in a SQLite file.
	DriverSQLite StorageDriver = "sqlite"
	// DriverMemory keeps preferences for the life of the process only.
	DriverMemory StorageDriver = "memory"
)

// StorageConfig configures the preference backend.
type StorageConfig struct {
	Driver StorageDriver `yaml:"driver"`
	Path   string        `yaml:"path"`
}

// MetricsConfig configures Prometheus instruments.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// Config is the full runtime configuration.
type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	Locale   string        `yaml:"locale"`
	LogLevel string        `yaml:"logLevel"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "./data/tipcalc.db",
		},
		Locale:   "en-US",
		LogLevel: "info",
		Metrics:  MetricsConfig{Namespace: "tipcalc"},
	}
}

// Load builds a Config from Default, the YAML file at path if path is not
// empty, and then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (c *Config) applyEnv() {
	c.Storage.Path = getEnv("TIPCALC_DB_PATH", c.Storage.Path)
	c.Storage.Driver = StorageDriver(getEnv("TIPCALC_STORAGE", string(c.Storage.Driver)))
	c.Locale = getEnv("TIPCALC_LOCALE", c.Locale)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Metrics.Namespace = getEnv("TIPCALC_METRICS_NAMESPACE", c.Metrics.Namespace)
}

func (c *Config) normalise() {
	c.Storage.Driver = StorageDriver(strings.ToLower(strings.TrimSpace(string(c.Storage.Driver))))
	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
	c.Locale = strings.TrimSpace(c.Locale)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Metrics.Namespace = strings.TrimSpace(c.Metrics.Namespace)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage driver must be one of sqlite, memory, got %q", c.Storage.Driver)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}
