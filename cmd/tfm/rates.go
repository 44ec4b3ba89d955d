package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mberan/tfm/internal/cli"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show per-transition success and failure rates",
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.AnalyzeOptions{}
		opts.LogFile, _ = cmd.Flags().GetString("log-file")
		opts.States = splitStates(cmd)

		if err := cli.Rates(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ratesCmd)
	addAnalyzeFlags(ratesCmd)
}
