package server

import (
	"fmt"
	"net"
	"strconv"
)

// Workers is the size of the server worker pool. It is not configurable.
const Workers = 4

const (
	SinkPassthrough = "passthrough"
	SinkGCP         = "gcp"
)

// Config holds configuration for the application server process.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// Command is the server executable.
	Command string `mapstructure:"command" default:"gunicorn"`
	// Args are the server arguments, split on whitespace. ${BIND}, ${HOST},
	// ${PORT}, ${WORKERS} and ${APP_MODULE} are expanded by the launcher.
	Args string `mapstructure:"args" default:"--bind ${BIND} --workers ${WORKERS} ${APP_MODULE}"`
	// LogSink selects how server output is handled (passthrough, gcp).
	LogSink string `mapstructure:"log_sink" default:"gcp"`
	// Exec replaces the launcher process with the server instead of
	// running it as a child.
	Exec bool `mapstructure:"exec" default:"false"`
}

// IsValidSink checks if the configured log sink is known.
func (c Config) IsValidSink() bool {
	switch c.LogSink {
	case SinkPassthrough, SinkGCP:
		return true
	default:
		return false
	}
}

// Validate checks the server settings.
func (c Config) Validate() error {
	if c.Command == "" {
		return fmt.Errorf("server command is required")
	}
	if !c.IsValidSink() {
		return fmt.Errorf("unsupported server log sink %q", c.LogSink)
	}
	if c.Exec && c.LogSink != SinkPassthrough {
		return fmt.Errorf("server exec mode requires the %q log sink", SinkPassthrough)
	}
	return nil
}

// ValidatePort checks that port is a usable TCP port.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	return nil
}

// Bind returns the host:port address the server listens on.
func (c Config) Bind(port int) string {
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
