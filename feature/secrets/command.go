package secrets

import (
	"bytes"
	"context"
	"fmt"

	"deploy-launcher/core/process"

	"github.com/joho/godotenv"
)

// CommandSource runs an external program that prints secrets in dotenv
// format on stdout.
type CommandSource struct {
	args []string
}

// NewCommandSource creates a source for the given command line.
func NewCommandSource(command string) (*CommandSource, error) {
	args, err := process.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid secrets command: %w", err)
	}
	return &CommandSource{args: args}, nil
}

func (s *CommandSource) Name() string {
	return SourceCommand
}

func (s *CommandSource) Load(ctx context.Context) (map[string]string, error) {
	out, err := process.Output(ctx, process.Command{Name: "secrets command", Args: s.args})
	if err != nil {
		return nil, err
	}
	vars, err := godotenv.Parse(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to parse secrets command output: %w", err)
	}
	return vars, nil
}
