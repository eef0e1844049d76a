package cmd

import (
	"deploy-launcher/core/launcher"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Load secrets and apply pending migrations",
	Long:  `Runs the secrets and migration steps without starting the server, e.g. for a release job.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBootstrap(configDir)
		if err != nil {
			return err
		}
		defer b.sync()

		l := launcher.New(b.logger)
		l.Add(b.secretsStep(l.Logger()), b.migrateStep(l.Logger()))
		return l.Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
