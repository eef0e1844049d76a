package cmd

import (
	"errors"
	"fmt"
	"os"

	"deploy-launcher/core/launcher"
	"deploy-launcher/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// RootCmd represents the base command when called without any subcommands.
// It runs the full launch: secrets, migrations, server.
var RootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Deployment launcher",
	Long: `Launcher bootstraps an application deployment: it loads secrets into the
environment, applies pending database migrations and starts the application
server with a fixed worker pool. Each step must succeed before the next starts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBootstrap(configDir)
		if err != nil {
			return err
		}
		defer b.sync()

		l := launcher.New(b.logger)
		l.Add(b.secretsStep(l.Logger()), b.migrateStep(l.Logger()), b.serveStep(l.Logger()))
		return l.Run(cmd.Context())
	},
}

// Execute runs the root command and exits with the code of the failing step,
// or of the server when every step succeeded.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Step failures are already logged by the launcher.
	var stepErr *launcher.StepError
	if !errors.As(err, &stepErr) {
		cfg := &logger.Config{
			Level:  "debug",
			Format: logger.FormatConsole,
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	os.Exit(launcher.ExitCode(err))
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding the optional .env file")
}
