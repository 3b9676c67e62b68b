package main

import (
	"fmt"
	"os"

	"github.com/JonnyWalker81/lifedash/internal/config"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string

	// populated by loadConfig before any subcommand runs
	loader *config.Loader
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lifedash-api",
	Short: "Life dashboard API server",
	Long: `A REST API and CLI for a personal life-tracking dashboard.

Daily signals, plans, todos, workouts and reflections live in CSV files
under the data directory. The insight engine turns the signal log into
streaks, weight trends and detected patterns.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loader = config.NewLoader(configPath)

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.SetDefault(logger.New(cfg.Log.LoggerConfig()))
	return nil
}
