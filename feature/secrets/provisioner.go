package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provisioner populates the environment from a Source.
type Provisioner struct {
	source   Source
	override bool
	env      Environment
	logger   *zap.Logger
	exports  [][2]string
	applied  []string
}

// NewProvisioner creates a provisioner writing to the process environment.
func NewProvisioner(source Source, override bool, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		source:   source,
		override: override,
		env:      ProcessEnvironment,
		logger:   logger,
	}
}

// WithEnvironment replaces the target environment.
func (p *Provisioner) WithEnvironment(env Environment) *Provisioner {
	p.env = env
	return p
}

// Export sets name=value after the secrets are applied, whatever the secrets
// contained.
func (p *Provisioner) Export(name, value string) *Provisioner {
	p.exports = append(p.exports, [2]string{name, value})
	return p
}

// Applied returns the names of the variables written by the last Run.
func (p *Provisioner) Applied() []string {
	return p.applied
}

// Run loads the secrets and writes them to the environment. Values are never
// logged.
func (p *Provisioner) Run(ctx context.Context) error {
	vars, err := p.source.Load(ctx)
	if err != nil {
		return err
	}

	applied, err := Apply(vars, p.override, p.env)
	p.applied = applied
	if err != nil {
		return fmt.Errorf("failed to apply secrets: %w", err)
	}

	p.logger.Info("Secrets loaded",
		zap.String("source", p.source.Name()),
		zap.Int("loaded", len(vars)),
		zap.Int("applied", len(applied)),
	)
	p.logger.Debug("Secret variables applied", zap.Strings("names", applied))

	for _, kv := range p.exports {
		if kv[0] == "" {
			continue
		}
		if err := p.env.Setenv(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to export %s: %w", kv[0], err)
		}
		p.logger.Info("Exported variable", zap.String("name", kv[0]), zap.String("value", kv[1]))
	}
	return nil
}
