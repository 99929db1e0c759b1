package commands

import (
	"fmt"

	"github.com/levelfourab/s2-go/config"
	"github.com/spf13/cobra"
)

func basinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basin",
		Short: "Manage the streams of a basin",
	}

	cmd.AddCommand(
		listStreamsCmd(),
		createStreamCmd(),
		deleteStreamCmd(),
		getStreamConfigCmd(),
		reconfigureStreamCmd(),
	)
	return cmd
}

func listStreamsCmd() *cobra.Command {
	var prefix, startAfter string
	var limit uint64

	cmd := &cobra.Command{
		Use:   "list-streams <basin>",
		Short: "List the streams of a basin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			names, err := client.Basin(args[0]).ListStreams(cmd.Context(), prefix, startAfter, limit)
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list streams starting with this prefix")
	cmd.Flags().StringVar(&startAfter, "start-after", "", "only list streams after this name")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of streams to list")
	return cmd
}

func createStreamCmd() *cobra.Command {
	var flags streamConfigFlags

	cmd := &cobra.Command{
		Use:   "create-stream <basin> <stream>",
		Short: "Create a stream",
		Long: "Create a stream. Fields not given as flags are taken from the default\n" +
			"stream config of the basin.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.StreamConfig
			if flags.changed(cmd.Flags()) {
				sc, err := flags.streamConfig(cmd.Flags())
				if err != nil {
					return err
				}
				cfg = &sc
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Basin(args[0]).CreateStream(cmd.Context(), args[1], cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stream %s created in %s\n", args[1], args[0])
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func deleteStreamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-stream <basin> <stream>",
		Short: "Delete a stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Basin(args[0]).DeleteStream(cmd.Context(), args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stream %s deleted from %s\n", args[1], args[0])
			return nil
		},
	}
}

func getStreamConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-stream-config <basin> <stream>",
		Short: "Show the config of a stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			cfg, err := client.Basin(args[0]).GetStreamConfig(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), newStreamConfigView(cfg))
		},
	}
}

func reconfigureStreamCmd() *cobra.Command {
	var flags streamConfigFlags

	cmd := &cobra.Command{
		Use:   "reconfigure-stream <basin> <stream>",
		Short: "Change the config of a stream",
		Long: "Change the config of a stream. Only the fields given as flags are\n" +
			"changed, an empty --retention-policy resets the policy.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.streamConfig(cmd.Flags())
			if err != nil {
				return err
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			return client.Basin(args[0]).ReconfigureStream(cmd.Context(), args[1], cfg, flags.mask(cmd.Flags()))
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
