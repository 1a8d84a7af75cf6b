package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/vertical-mint/internal/logging"
)

var (
	configFile string
	envFile    string
	logLevel   string

	logger      *zap.Logger
	closeLogger = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "minter",
	Short: "Vertical NFT generation pipeline",
	Long: `Generates Vertical NFT artwork: selects traits, renders a prompt,
calls an image model, pins the image and ERC-721 metadata to IPFS and
points the token at it on chain.

Configuration comes from a vertical.yaml file, a .env file and the
environment, in increasing priority.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, _, closeLogger, err = logging.New(logging.Config{
			Level:  logLevel,
			Format: "console",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		_ = closeLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./vertical.yaml or ~/.vertical/vertical.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level before the config is loaded")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
}
