package migration

import "fmt"

const (
	ModeCommand = "command"
	ModeSQL     = "sql"
)

// Config holds configuration for the migration step.
type Config struct {
	// Mode selects how migrations are applied (command, sql).
	Mode string `mapstructure:"mode" default:"command"`
	// Command is the external migration tool invoked in command mode.
	Command string `mapstructure:"command" default:""`
	// Dir holds golang-migrate style "<version>_<name>.up.sql" files for sql mode.
	Dir string `mapstructure:"dir" default:"migrations"`
}

// Validate checks the settings the selected mode needs.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeCommand:
		if c.Command == "" {
			return fmt.Errorf("migration command is required in %s mode", c.Mode)
		}
	case ModeSQL:
		if c.Dir == "" {
			return fmt.Errorf("migration dir is required in %s mode", c.Mode)
		}
	default:
		return fmt.Errorf("unsupported migration mode %q", c.Mode)
	}
	return nil
}
