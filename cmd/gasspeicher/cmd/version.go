package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gasspeicher version %s\n", version)
		fmt.Println("German gas storage depletion projections from BNetzA data")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
