package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE_BACKEND
const (
	BackendRelational = "relational"
	BackendStatement  = "statement"
	BackendMemory     = "memory"
	BackendSurreal    = "surreal"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Surreal  SurrealConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// StorageConfig selects the repository implementation
type StorageConfig struct {
	Backend string
}

// DatabaseConfig holds SQL connection settings for the relational and statement backends
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// SurrealConfig holds SurrealDB connection settings
type SurrealConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus collectors and /metrics
type MetricsConfig struct {
	Enabled bool
}

// Load reads an optional .env file, then configuration from environment
// variables with sensible defaults. Variables already set win over the file.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", BackendRelational),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite3"),
			DSN:             getEnv("DB_DSN", "file:bookshelf.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			Migrate:         getBoolEnv("DB_MIGRATE", true),
		},
		Surreal: SurrealConfig{
			Host:      getEnv("SURREAL_HOST", "localhost"),
			Port:      getEnv("SURREAL_PORT", "8000"),
			Namespace: getEnv("SURREAL_NAMESPACE", "bookshelf"),
			Database:  getEnv("SURREAL_DATABASE", "main"),
			User:      getEnv("SURREAL_USER", "root"),
			Password:  getEnv("SURREAL_PASSWORD", "root"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", true),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogFormat returns the zap encoder to use. Unset, development logs to the
// console and every other environment logs JSON.
func (c *Config) LogFormat() string {
	if c.Log.Format != "" {
		return c.Log.Format
	}
	if c.IsDevelopment() {
		return "console"
	}
	return "json"
}

// UsesSQL reports whether the selected backend needs a SQL connection
func (c *Config) UsesSQL() bool {
	return c.Storage.Backend == BackendRelational || c.Storage.Backend == BackendStatement
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if c.IsProduction() && slices.Contains(c.Server.AllowedOrigins, "*") {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must not contain '*' in production"))
	}

	// Storage validation
	switch c.Storage.Backend {
	case BackendRelational, BackendStatement, BackendMemory, BackendSurreal:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be one of %s, got '%s'",
			strings.Join([]string{BackendRelational, BackendStatement, BackendMemory, BackendSurreal}, ", "), c.Storage.Backend))
	}

	// Database validation, only for the SQL backends
	if c.UsesSQL() {
		if c.Database.Driver != "sqlite3" && c.Database.Driver != "postgres" {
			errs = append(errs, fmt.Errorf("DB_DRIVER must be 'sqlite3' or 'postgres', got '%s'", c.Database.Driver))
		}
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required"))
		}
		if c.Database.MaxOpenConns <= 0 {
			errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be positive"))
		}
		if c.Database.MaxIdleConns < 0 {
			errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must not be negative"))
		}
	}

	// Surreal validation
	if c.Storage.Backend == BackendSurreal {
		if c.Surreal.Host == "" {
			errs = append(errs, errors.New("SURREAL_HOST is required"))
		}
		if c.Surreal.Port == "" {
			errs = append(errs, errors.New("SURREAL_PORT is required"))
		}
		if c.Surreal.Namespace == "" {
			errs = append(errs, errors.New("SURREAL_NAMESPACE is required"))
		}
		if c.Surreal.Database == "" {
			errs = append(errs, errors.New("SURREAL_DATABASE is required"))
		}
	}

	// Log validation
	if c.Log.Format != "" && c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got '%s'", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
