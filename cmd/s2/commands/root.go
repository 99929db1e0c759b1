// Package commands implements the s2 command line tool.
package commands

import (
	"log/slog"
	"os"

	s2 "github.com/levelfourab/s2-go"
	"github.com/levelfourab/s2-go/internal/credentials"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	configPath string
	verbose    bool
	logger     *slog.Logger
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "s2",
		Short:        "Manage basins and streams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			if configPath == "" {
				path, err := credentials.Path()
				if err != nil {
					return err
				}
				configPath = path
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "nats://127.0.0.1:4222", "URL of the server")
	root.PersistentFlags().StringVar(&configPath, "config", "", "credentials file (default <user config dir>/s2/config.toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests")

	root.AddCommand(configCmd(), accountCmd(), basinCmd())
	return root
}

// connect loads the credentials and creates a client from them and the
// global flags. Commands that only write the credentials never call it, so
// a broken credentials file can still be replaced.
func connect() (s2.Client, error) {
	creds, err := credentials.Load(configPath)
	if err != nil {
		return nil, err
	}

	return s2.NewClient(
		s2.Config{
			ServerURL:   serverURL,
			AccessToken: creds.Token,
		},
		s2.WithLogger(logger),
	)
}
