package commands

import (
	"fmt"

	"github.com/levelfourab/s2-go/config"
	"github.com/spf13/cobra"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage basins",
	}

	cmd.AddCommand(
		listBasinsCmd(),
		createBasinCmd(),
		deleteBasinCmd(),
		getBasinConfigCmd(),
		reconfigureBasinCmd(),
	)
	return cmd
}

func listBasinsCmd() *cobra.Command {
	var prefix, startAfter string
	var limit uint64

	cmd := &cobra.Command{
		Use:   "list-basins",
		Short: "List basins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			names, err := client.Account().ListBasins(cmd.Context(), prefix, startAfter, limit)
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list basins starting with this prefix")
	cmd.Flags().StringVar(&startAfter, "start-after", "", "only list basins after this name")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of basins to list")
	return cmd
}

func createBasinCmd() *cobra.Command {
	var flags streamConfigFlags

	cmd := &cobra.Command{
		Use:   "create-basin <basin>",
		Short: "Create a basin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.BasinConfig
			if flags.changed(cmd.Flags()) {
				sc, err := flags.streamConfig(cmd.Flags())
				if err != nil {
					return err
				}
				cfg = &config.BasinConfig{DefaultStreamConfig: &sc}
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Account().CreateBasin(cmd.Context(), args[0], cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Basin %s created\n", args[0])
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func deleteBasinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-basin <basin>",
		Short: "Delete a basin and all of its streams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Account().DeleteBasin(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Basin %s deleted\n", args[0])
			return nil
		},
	}
}

func getBasinConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-basin-config <basin>",
		Short: "Show the config of a basin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			cfg, err := client.Account().GetBasinConfig(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), newBasinConfigView(cfg))
		},
	}
}

func reconfigureBasinCmd() *cobra.Command {
	var flags streamConfigFlags

	cmd := &cobra.Command{
		Use:   "reconfigure-basin <basin>",
		Short: "Change the default stream config of a basin",
		Long: "Change the default stream config of a basin. Only the fields given as flags\n" +
			"are changed, an empty --retention-policy removes the policy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.streamConfig(cmd.Flags())
			if err != nil {
				return err
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			cfg := config.BasinConfig{DefaultStreamConfig: &sc}
			return client.Account().ReconfigureBasin(cmd.Context(), args[0], cfg, flags.mask(cmd.Flags()))
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
