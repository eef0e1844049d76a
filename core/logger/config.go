package logger

import "fmt"

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatGCP     = "gcp"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json, console, gcp).
	Format string `mapstructure:"format" default:"gcp"`
}

// Validate checks the configured format.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatConsole, FormatGCP:
		return nil
	default:
		return fmt.Errorf("unsupported log format %q", c.Format)
	}
}
