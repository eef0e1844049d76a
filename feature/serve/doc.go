// Package serve implements the last launch step: starting the application
// server.
//
// The server is an external program (gunicorn by default) started with a
// fixed pool of server.Workers workers and bound to host:PORT. Its command
// line is a template; ${BIND}, ${HOST}, ${PORT}, ${WORKERS} and ${APP_MODULE}
// are filled in by the launcher and any other ${VAR} comes from the
// environment.
//
// # Output
//
// With the gcp log sink the server's stdout and stderr are read line by line
// and re-emitted through the launcher logger as Cloud Logging entries. With
// the passthrough sink the server writes to the launcher's own streams.
//
// # Lifetime
//
// Run does not return while the server is up. The launcher forwards SIGINT
// and SIGTERM to it and exits with its exit code. In exec mode the launcher
// process is replaced by the server altogether.
package serve
