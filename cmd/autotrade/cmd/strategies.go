package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/autotrade/strategies"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available strategy names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range strategies.DefaultFactory().Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
