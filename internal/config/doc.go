// Package config manages application configuration for the bookshelf API.
//
// Configuration is read from environment variables. An optional .env file
// (path overridable with ENV_FILE) is loaded first; variables already present
// in the environment take precedence over it.
//
//	cfg, err := config.Load()
//	if err == nil {
//	    err = cfg.Validate()
//	}
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - StorageConfig: repository backend selection
//   - DatabaseConfig: SQL driver, DSN, pool and migration settings
//   - SurrealConfig: SurrealDB connection settings
//   - LogConfig: zap level and encoder
//   - MetricsConfig: Prometheus collectors
//
// # Environment Variables
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	STORAGE_BACKEND       - relational, statement, memory or surreal (default: relational)
//	DB_DRIVER             - sqlite3 or postgres (default: sqlite3)
//	DB_DSN                - SQL data source name
//	DB_MIGRATE            - apply embedded migrations on start (default: true)
//	SURREAL_HOST          - SurrealDB host
//	LOG_LEVEL             - debug, info, warn or error (default: info)
//	LOG_FORMAT            - json or console (default: console in development, else json)
//	METRICS_ENABLED       - expose /metrics (default: true)
//
// Validate aggregates every problem with errors.Join so a misconfigured
// deployment reports all of them at once.
package config
