// Package config provides configuration management for the launcher.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field in a `default`
// struct tag.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Port: the server port, read from PORT (default 8000)
//   - App: the application-identifying variable exported for the server
//   - Server: server command, arguments, log sink, exec mode
//   - Secrets: secrets source and its settings
//   - Migration: migration mode, command or SQL directory
//   - Database: MySQL/SQLite connection details for SQL migrations
//   - Storage: S3/MinIO credentials and bucket for the s3 secrets source
//   - Log: logging level and format
//
// Nested keys map to upper-snake environment variables, e.g. server.log_sink
// is SERVER_LOG_SINK.
//
// # Reloading
//
// The launcher loads the configuration once to find the secrets and again
// after the secrets step, so values provided as secrets (PORT,
// DATABASE_PASSWORD, ...) are picked up by the later steps.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Port)
package config
