package commands

import (
	"fmt"

	"github.com/levelfourab/s2-go/internal/credentials"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the local configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-token <token>",
		Short: "Store the access token used to authenticate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.Save(configPath, &credentials.Credentials{Token: args[0]}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", configPath)
			return nil
		},
	})

	return cmd
}
