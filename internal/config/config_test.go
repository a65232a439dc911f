package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_EmptyAllowedOrigins(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.AllowedOrigins = []string{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty CORS_ALLOWED_ORIGINS")
	}
	if !strings.Contains(err.Error(), "CORS_ALLOWED_ORIGINS") {
		t.Errorf("expected error to mention CORS_ALLOWED_ORIGINS, got: %v", err)
	}
}

func TestConfig_Validate_UnknownBackend(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Backend = "jpa"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown STORAGE_BACKEND")
	}
	if !strings.Contains(err.Error(), "STORAGE_BACKEND") {
		t.Errorf("expected error to mention STORAGE_BACKEND, got: %v", err)
	}
}

func TestConfig_Validate_SQLBackendRequiresDriver(t *testing.T) {
	for _, backend := range []string{BackendRelational, BackendStatement} {
		cfg := validBaseConfig()
		cfg.Storage.Backend = backend
		cfg.Database.Driver = "mysql"

		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error for unsupported DB_DRIVER", backend)
		}
		if !strings.Contains(err.Error(), "DB_DRIVER") {
			t.Errorf("%s: expected error to mention DB_DRIVER, got: %v", backend, err)
		}
	}
}

func TestConfig_Validate_MemoryBackendIgnoresDatabase(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Backend = BackendMemory
	cfg.Database = DatabaseConfig{}
	cfg.Surreal = SurrealConfig{}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_SurrealBackendRequiresHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Storage.Backend = BackendSurreal
	cfg.Surreal.Host = ""
	cfg.Database = DatabaseConfig{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SURREAL_HOST")
	}
	if !strings.Contains(err.Error(), "SURREAL_HOST") {
		t.Errorf("expected error to mention SURREAL_HOST, got: %v", err)
	}
	if strings.Contains(err.Error(), "DB_") {
		t.Errorf("expected SQL settings to be ignored, got: %v", err)
	}
}

func TestConfig_Validate_InvalidLogFormat(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid LOG_FORMAT")
	}
	if !strings.Contains(err.Error(), "LOG_FORMAT") {
		t.Errorf("expected error to mention LOG_FORMAT, got: %v", err)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           "",
			Env:            "invalid",
			AllowedOrigins: []string{},
		},
		Storage: StorageConfig{Backend: BackendStatement},
		Database: DatabaseConfig{
			Driver: "",
			DSN:    "",
		},
		Log: LogConfig{Format: "json"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected multiple validation errors")
	}

	errStr := err.Error()
	expectedFields := []string{"SERVER_PORT", "SERVER_ENV", "CORS_ALLOWED_ORIGINS", "DB_DRIVER", "DB_DSN", "DB_MAX_OPEN_CONNS"}
	for _, field := range expectedFields {
		if !strings.Contains(errStr, field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_UsesSQL(t *testing.T) {
	tests := map[string]bool{
		BackendRelational: true,
		BackendStatement:  true,
		BackendMemory:     false,
		BackendSurreal:    false,
	}
	for backend, want := range tests {
		cfg := &Config{Storage: StorageConfig{Backend: backend}}
		if got := cfg.UsesSQL(); got != want {
			t.Errorf("%s: expected UsesSQL() %v, got %v", backend, want, got)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "development"}}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	cfg.Server.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false in production")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "production"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	cfg.Server.Env = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false in development")
	}
}

func TestConfig_LogFormat_FollowsEnvironmentWhenUnset(t *testing.T) {
	tests := []struct {
		env    string
		format string
		want   string
	}{
		{"development", "", "console"},
		{"production", "", "json"},
		{"test", "", "json"},
		{"development", "json", "json"},
		{"production", "console", "console"},
	}
	for _, tt := range tests {
		cfg := &Config{Server: ServerConfig{Env: tt.env}, Log: LogConfig{Format: tt.format}}
		if got := cfg.LogFormat(); got != tt.want {
			t.Errorf("env %q format %q: expected %q, got %q", tt.env, tt.format, tt.want, got)
		}
	}
}

func TestConfig_Validate_ProductionRejectsWildcardOrigin(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.AllowedOrigins = []string{"*"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected wildcard to be accepted in development, got %v", err)
	}

	cfg.Server.Env = "production"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for wildcard origin in production")
	}
	if !strings.Contains(err.Error(), "CORS_ALLOWED_ORIGINS") {
		t.Errorf("expected error to mention CORS_ALLOWED_ORIGINS, got: %v", err)
	}
}

func TestConfig_Validate_EmptyLogFormatIsAccepted(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Log.Format = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

// ============================================================================
// Load Tests
// ============================================================================

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
	if cfg.Storage.Backend != BackendRelational {
		t.Errorf("expected default backend %q, got %q", BackendRelational, cfg.Storage.Backend)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("SERVER_READ_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected backend memory, got %q", cfg.Storage.Backend)
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("expected 3 open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.Migrate {
		t.Error("expected migrations disabled")
	}
	if cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("expected 2s read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_EnvFile_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SERVER_PORT=7070\nSURREAL_NAMESPACE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("SERVER_PORT", "9090")
	// godotenv sets unset keys process-wide; put the previous state back
	prev, had := os.LookupEnv("SURREAL_NAMESPACE")
	_ = os.Unsetenv("SURREAL_NAMESPACE")
	t.Cleanup(func() {
		if had {
			_ = os.Setenv("SURREAL_NAMESPACE", prev)
		} else {
			_ = os.Unsetenv("SURREAL_NAMESPACE")
		}
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected environment to win, got port %q", cfg.Server.Port)
	}
	if cfg.Surreal.Namespace != "from-file" {
		t.Errorf("expected namespace from file, got %q", cfg.Surreal.Namespace)
	}
}

// validBaseConfig returns a minimal valid configuration for testing
func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Storage: StorageConfig{
			Backend: BackendRelational,
		},
		Database: DatabaseConfig{
			Driver:       "sqlite3",
			DSN:          "file::memory:",
			MaxOpenConns: 1,
			Migrate:      true,
		},
		Surreal: SurrealConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "bookshelf",
			Database:  "main",
			User:      "root",
			Password:  "root",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
