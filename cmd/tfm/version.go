package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mberan/tfm"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tfm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tfm version %s\n", strings.TrimSpace(tfm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
