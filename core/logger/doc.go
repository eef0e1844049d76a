// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the launcher's own messages and a
// sink that turns the server process output into structured entries.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json, console (development) or gcp
//
// The gcp format writes one JSON object per line to stdout with the keys
// Google Cloud Logging understands: "severity", "message", "timestamp" (UTC)
// and "exception" for stack traces.
//
// # Server Output
//
// Forward reads a stream of lines (typically a child process stdout or
// stderr) and re-emits each line through the logger, preserving fields of
// lines that are already JSON and guessing the level of plain lines from a
// "[LEVEL]" token.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "gcp"})
//	log.Info("Launcher started")
//
//	go logger.Forward(log, "stdout", stdoutPipe)
package logger
