// Package config loads and validates application configuration.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file named by WANDERLIST_CONFIG, and environment variables. A .env
// file in the working directory is read first and never overrides variables
// already present in the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port" json:"port"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes"`

	Storage Storage `yaml:"storage" json:"storage"`
}

// Storage selects and configures the key-value backend trips are kept in.
type Storage struct {
	// Backend is one of memory, file, sqlite. Defaults to file.
	Backend string `yaml:"backend" json:"backend"`

	// Path is the data directory for the file backend or the database file
	// for the sqlite backend. Ignored by memory.
	Path string `yaml:"path" json:"path"`

	// QuotaBytes bounds the memory backend. 0 means unlimited.
	QuotaBytes int64 `yaml:"quota_bytes" json:"quota_bytes"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:         "8080",
		LogLevel:     "info",
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 1 << 20,
		Storage: Storage{
			Backend:    BackendFile,
			Path:       "./data",
			QuotaBytes: 5 << 20,
		},
	}
}

// Load builds the Config from .env, the optional YAML file and the
// environment, then validates it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("WANDERLIST_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// Validate implements validation.Validatable.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.CORSOrigins, validation.Each(is.URL)),
		validation.Field(&c.MaxBodyBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.Storage),
	)
}

// Validate implements validation.Validatable.
func (s Storage) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Backend, validation.Required, validation.In(BackendMemory, BackendFile, BackendSQLite)),
		validation.Field(&s.Path, validation.When(s.Backend != BackendMemory, validation.Required)),
		validation.Field(&s.QuotaBytes, validation.Min(int64(0))),
	)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// SlogLevel maps LogLevel onto slog's levels.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitCSV(v)
	}
	c.Storage.Backend = getEnv("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Path = getEnv("STORAGE_PATH", c.Storage.Path)

	var err error
	if c.Storage.QuotaBytes, err = getEnvInt64("STORAGE_QUOTA_BYTES", c.Storage.QuotaBytes); err != nil {
		return err
	}
	if c.MaxBodyBytes, err = getEnvInt64("MAX_BODY_BYTES", c.MaxBodyBytes); err != nil {
		return err
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
