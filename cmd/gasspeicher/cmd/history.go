package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/profvolz/gasspeicher/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and export recorded projection runs",
	Long: `Query the projection history recorded by previous runs.

Subcommands:
  list   - List recent runs from the SQLite history
  export - Copy the CSV ledger, optionally xz-compressed

Examples:
  gasspeicher history list --data-dir ./data --limit 10
  gasspeicher history export --data-dir ./data --output projections.csv.xz`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent projection runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the CSV ledger for archival",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

var (
	historyDataDir    string
	historyDBFile     string
	historyLedgerFile string
	historyLimit      int
	historyOutput     string
	historyCompress   bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyCmd.PersistentFlags().StringVarP(&historyDataDir, "data-dir", "d", "./data", "directory holding the projection history")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
	historyListCmd.Flags().StringVar(&historyDBFile, "history-file", "projections.sqlite", "SQLite history filename inside --data-dir")
	historyExportCmd.Flags().StringVar(&historyLedgerFile, "projections-file", "projections.csv", "CSV ledger filename inside --data-dir")
	historyExportCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "output file (default stdout)")
	historyExportCmd.Flags().BoolVar(&historyCompress, "compress", false, "xz-compress the export")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := ledger.NewSQLite(filepath.Join(historyDataDir, historyDBFile))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No projection runs recorded yet.")
		return nil
	}

	fmt.Printf("%-27s %-12s %-8s %-12s %9s  %s\n",
		"RUN", "DATE", "SOURCE", "DATA UNTIL", "LEVEL %", "AVG TARGET")
	for _, r := range runs {
		target := r.AvgTargetDate
		if target == "" {
			target = "-"
		}
		fmt.Printf("%-27s %-12s %-8s %-12s %9.2f  %s\n",
			r.RunID, r.RunDateBerlin, r.SourceMode, r.LatestDataDate,
			r.CurrentLevelPct, target)
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	ledgerPath := filepath.Join(historyDataDir, historyLedgerFile)

	out := os.Stdout
	if historyOutput != "" {
		f, err := os.Create(historyOutput)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f

		if strings.HasSuffix(historyOutput, ".xz") {
			historyCompress = true
		}
	}

	if err := ledger.Export(ledgerPath, out, historyCompress); err != nil {
		return fmt.Errorf("export ledger: %w", err)
	}
	if historyOutput != "" {
		fmt.Printf("Exported %s to %s\n", ledgerPath, historyOutput)
	}
	return nil
}
