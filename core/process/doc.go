// Package process runs the external programs the launcher sequences.
//
// Run starts a command as a child, forwards termination signals to it and
// reports a non-zero exit as *ExitError carrying the exit code, so callers can
// propagate it as their own. A child killed by a signal reports 128+signal,
// the shell convention.
//
// Exec replaces the launcher with the command instead, for deployments where
// the server should become the container's main process.
package process
