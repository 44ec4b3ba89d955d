package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mberan/tfm/internal/cli"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build a failure matrix from a log file",
	Long: `Parses a log file (or standard input) for TRANSITION and STATE lines and
renders the resulting transition failure matrix as markdown, ascii or json.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := analyzeOptions(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cli.Analyze(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalyzeFlags(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, ascii or json")
	analyzeCmd.Flags().StringP("output", "o", "", "Output file (stdout if not specified)")
	analyzeCmd.Flags().Int("min-failures", 1, "Minimum failures to show in the JSON hotspots")
	analyzeCmd.Flags().Bool("pretty", false, "Render markdown output for the terminal")
	analyzeCmd.Flags().String("baseline", "", "Baseline file for regression comparison (created if missing)")
	analyzeCmd.Flags().Float64("regression-threshold", 0.2, "Relative failure-rate increase that counts as a regression")
	analyzeCmd.Flags().Float64("slow-threshold", 0, "Report transitions slower than this average (ms, 0 disables)")
}

// addAnalyzeFlags registers the flags shared by every log-reading command.
func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("log-file", "l", "", "Log file to analyze (reads stdin if not specified)")
	cmd.Flags().StringP("states", "s", "", "Comma-separated list of states (auto-detected if omitted)")
}

// analyzeOptions collects flags and config into the options struct.
func analyzeOptions(cmd *cobra.Command) (cli.AnalyzeOptions, error) {
	opts := cli.AnalyzeOptions{}
	opts.LogFile, _ = cmd.Flags().GetString("log-file")
	opts.Format, _ = cmd.Flags().GetString("format")
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.MinFailures, _ = cmd.Flags().GetInt("min-failures")
	opts.Pretty, _ = cmd.Flags().GetBool("pretty")
	opts.Baseline, _ = cmd.Flags().GetString("baseline")
	opts.RegressionThreshold, _ = cmd.Flags().GetFloat64("regression-threshold")
	opts.SlowThresholdMS, _ = cmd.Flags().GetFloat64("slow-threshold")
	opts.States = splitStates(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return opts, err
	}
	cfg.Apply(&opts, cmd.Flags().Changed)
	return opts, nil
}

func splitStates(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("states")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	states := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			states = append(states, trimmed)
		}
	}
	return states
}
