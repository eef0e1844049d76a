package migration

import (
	"context"
	"fmt"

	"deploy-launcher/core/database"
	"deploy-launcher/core/process"

	"go.uber.org/zap"
)

// Runner applies pending schema migrations.
type Runner interface {
	Run(ctx context.Context) error
}

// NewRunner builds the runner selected by cfg. db is only used in sql mode.
func NewRunner(cfg Config, db database.Config, logger *zap.Logger) (Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeSQL {
		if err := db.Validate(); err != nil {
			return nil, err
		}
		return NewSQLRunner(cfg.Dir, db, logger), nil
	}
	runner, err := NewCommandRunner(cfg.Command, logger)
	if err != nil {
		return nil, err
	}
	return runner, nil
}

// CommandRunner invokes an external migration tool.
type CommandRunner struct {
	args   []string
	logger *zap.Logger
}

// NewCommandRunner creates a runner for the given command line.
func NewCommandRunner(command string, logger *zap.Logger) (*CommandRunner, error) {
	args, err := process.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid migration command: %w", err)
	}
	return &CommandRunner{args: args, logger: logger}, nil
}

// Run executes the tool with the launcher environment. Its output is not
// captured and its exit code propagates.
func (r *CommandRunner) Run(ctx context.Context) error {
	r.logger.Info("Running migration command", zap.Strings("command", r.args))
	return process.Run(ctx, process.Command{Name: "migration command", Args: r.args})
}
