package cmd

import (
	"context"
	"fmt"

	"deploy-launcher/core/launcher"

	"github.com/spf13/cobra"
)

// secretsCmd represents the secrets command
var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Load secrets and list the variables they provide",
	Long:  `Runs the secrets step and prints the names (never the values) of the variables it applied.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBootstrap(configDir)
		if err != nil {
			return err
		}
		defer b.sync()

		l := launcher.New(b.logger)
		p, err := b.provisioner(l.Logger())
		if err != nil {
			return err
		}

		l.Add(launcher.NewStep("secrets", func(ctx context.Context) error {
			if err := p.Run(ctx); err != nil {
				return err
			}
			for _, name := range p.Applied() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}))
		return l.Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(secretsCmd)
}
