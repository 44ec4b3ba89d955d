package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mberan/tfm/internal/cli"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the transition flow visualization",
	Long: `Parses a log file (or standard input) and outputs a Mermaid sankey diagram
showing success volume between states and failure volume into a FAIL node.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.GraphOptions{}
		opts.LogFile, _ = cmd.Flags().GetString("log-file")
		opts.MinTransitions, _ = cmd.Flags().GetInt("min-transitions")
		opts.SuccessOnly, _ = cmd.Flags().GetBool("success-only")

		if err := cli.Graph(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("log-file", "l", "", "Log file to analyze (reads stdin if not specified)")
	graphCmd.Flags().Int("min-transitions", 1, "Minimum transitions for a link to appear")
	graphCmd.Flags().Bool("success-only", false, "Omit failure flows (happy path only)")
}
