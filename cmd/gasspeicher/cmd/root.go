package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gasspeicher",
	Short: "German gas storage depletion projections from BNetzA data",
	Long: `Gasspeicher fetches the published BNetzA gas storage dataset, derives
linear depletion scenarios from a rolling window of daily withdrawal rates,
and appends one machine-readable row per execution to a projection ledger.

It provides tools for:
  - Running the single-shot projection pipeline (fetch, parse, project, persist)
  - Browsing and exporting the recorded projection history
  - Generating and validating configuration files`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
