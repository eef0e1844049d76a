package cmd

import (
	"context"
	"fmt"

	"deploy-launcher/core/config"
	"deploy-launcher/core/launcher"
	"deploy-launcher/core/logger"
	"deploy-launcher/core/server"
	"deploy-launcher/core/storage"
	"deploy-launcher/feature/migration"
	"deploy-launcher/feature/secrets"
	"deploy-launcher/feature/serve"

	"go.uber.org/zap"
)

// bootstrap holds what every command needs before its first step runs.
type bootstrap struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newBootstrap(dir string) (*bootstrap, error) {
	config.LoadEnvFile(dir)
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &bootstrap{cfg: cfg, logger: logg}, nil
}

func (b *bootstrap) sync() {
	_ = b.logger.Sync()
}

// refresh reads the configuration again so values the secrets step placed
// in the environment are visible to later steps. The .env file is not
// applied again.
func (b *bootstrap) refresh() error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("invalid configuration after loading secrets: %w", err)
	}
	if err := server.ValidatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid configuration after loading secrets: %w", err)
	}
	b.cfg = cfg
	return nil
}

func (b *bootstrap) provisioner(logg *zap.Logger) (*secrets.Provisioner, error) {
	deps := secrets.Dependencies{Bucket: b.cfg.Storage.Bucket}
	if b.cfg.Secrets.Source == secrets.SourceS3 {
		client, err := storage.NewClient(b.cfg.Storage)
		if err != nil {
			return nil, err
		}
		deps.Storage = client
	}

	src, err := secrets.NewSource(b.cfg.Secrets, deps)
	if err != nil {
		return nil, err
	}
	return secrets.NewProvisioner(src, b.cfg.Secrets.Override, logg).
		Export(b.cfg.App.Variable, b.cfg.App.Module), nil
}

func (b *bootstrap) secretsStep(logg *zap.Logger) launcher.Step {
	return launcher.NewStep("secrets", func(ctx context.Context) error {
		p, err := b.provisioner(logg)
		if err != nil {
			return err
		}
		if err := p.Run(ctx); err != nil {
			return err
		}
		return b.refresh()
	})
}

func (b *bootstrap) migrateStep(logg *zap.Logger) launcher.Step {
	return launcher.NewStep("migrate", func(ctx context.Context) error {
		runner, err := migration.NewRunner(b.cfg.Migration, b.cfg.Database, logg)
		if err != nil {
			return err
		}
		return runner.Run(ctx)
	})
}

func (b *bootstrap) serveStep(logg *zap.Logger) launcher.Step {
	return launcher.NewStep("serve", func(ctx context.Context) error {
		srv, err := serve.New(b.cfg.Server, b.cfg.Port, b.cfg.App.Module, logg)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	})
}
