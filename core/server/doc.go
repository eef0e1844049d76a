// Package server holds the application server configuration and constants.
//
// The launcher does not implement the server; it starts an external one. This
// package defines how that process is described: the bind host, the command
// line, the log sink for its output and the fixed worker pool size.
//
// # Configuration
//
// The Config struct defines the host, command, arguments, log sink
// (passthrough, gcp) and whether the launcher execs into the server. The port
// is read from the top-level PORT setting so platforms that inject PORT work
// unchanged.
//
// # Usage
//
// This package is used by the core/config package to embed server settings
// and by feature/serve to build and start the server process.
package server
