package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mberan/tfm/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "tfm",
	Short: "tfm builds transition failure matrices from workflow logs",
	Long: `tfm aggregates state-transition events from multi-step workflows into a
failure matrix, showing where failures cluster and how rates drift over time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to an optional tfm.yaml config file")
}

// loadConfig reads the --config file if one was given.
func loadConfig(cmd *cobra.Command) (*cli.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return &cli.Config{}, nil
	}
	return cli.LoadConfig(path)
}
