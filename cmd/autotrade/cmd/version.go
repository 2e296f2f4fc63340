package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the autotrade version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autotrade %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
