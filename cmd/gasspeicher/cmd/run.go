package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/profvolz/gasspeicher/config"
	"github.com/profvolz/gasspeicher/fetch"
	"github.com/profvolz/gasspeicher/ledger"
	"github.com/profvolz/gasspeicher/logger"
	"github.com/profvolz/gasspeicher/projection"
	"github.com/profvolz/gasspeicher/report"
	"github.com/profvolz/gasspeicher/series"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute projections and persist outputs",
	Long: `Run the single-shot projection pipeline: fetch the source CSV (with
cache fallback), normalize it into a daily series, compute the five scenario
projections over the lookback window, append one row to the projection
ledger, and print the console summary.

Example:
  gasspeicher run --minimum 20 --lookback-days 30 --data-dir ./data`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runMinimum     float64
	runLookback    int
	runDataDir     string
	runCacheFile   string
	runLedgerFile  string
	runReadmePath  string
	runSkipReadme  bool
	runTimeoutSecs int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().Float64VarP(&runMinimum, "minimum", "m", 20.0, "critical storage threshold in percent")
	runCmd.Flags().IntVarP(&runLookback, "lookback-days", "l", 30, "rolling window for rate calculation")
	runCmd.Flags().StringVarP(&runDataDir, "data-dir", "d", "./data", "directory for cached source data and outputs")
	runCmd.Flags().StringVar(&runCacheFile, "cache-file", "bnetza_cache.csv", "filename for cached source content inside --data-dir")
	runCmd.Flags().StringVar(&runLedgerFile, "projections-file", "projections.csv", "filename for appended projection history inside --data-dir")
	runCmd.Flags().StringVar(&runReadmePath, "readme", "README.md", "document whose projection block gets rewritten")
	runCmd.Flags().BoolVar(&runSkipReadme, "skip-readme", false, "skip the README update step")
	runCmd.Flags().IntVar(&runTimeoutSecs, "timeout", 20, "network fetch timeout in seconds")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Data.LogFile != "" {
		logger.EnableFile(cfg.Data.LogFile)
	}

	// Fetch → normalize → project → append → render, in strict sequence.
	// Any failure before the append leaves the ledger untouched.
	client := fetch.NewClient(cfg.Source.URLB, cfg.CachePath(), cfg.Timeout())
	text, mode, err := client.Fetch(context.Background())
	if err != nil {
		return fmt.Errorf("fetch source: %w", err)
	}

	ser, err := series.Parse(text)
	if err != nil {
		return fmt.Errorf("parse source: %w", err)
	}

	eng := projection.Engine{
		MinimumPct:   cfg.Projection.MinimumPct,
		LookbackDays: cfg.Projection.LookbackDays,
		SourceURLA:   cfg.Source.URLA,
		SourceURLB:   cfg.Source.URLB,
	}
	rec, err := eng.Run(ser, mode)
	if err != nil {
		return fmt.Errorf("compute projections: %w", err)
	}

	columns, values := rec.Row()
	if err := ledger.AppendCSV(cfg.LedgerPath(), columns, values); err != nil {
		return fmt.Errorf("append projection row: %w", err)
	}

	if path := cfg.HistoryPath(); path != "" {
		if err := recordHistory(path, rec); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}

	fmt.Print(report.Summary(rec))
	fmt.Printf("\nErgebnis geschrieben nach: %s\n", cfg.LedgerPath())
	fmt.Printf("Cache-Datei: %s\n", cfg.CachePath())

	if !cfg.Report.SkipReadme {
		report.PatchFile(cfg.Report.ReadmePath, cfg.Report.Heading, rec)
	}

	return nil
}

func recordHistory(path string, rec *projection.Record) error {
	db, err := ledger.NewSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.RecordRun(rec)
}

// loadRunConfig starts from the config file (or defaults) and lets explicitly
// set flags win over file values.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.ApplyEnv()
	}

	flags := cmd.Flags()
	if flags.Changed("minimum") {
		cfg.Projection.MinimumPct = runMinimum
	}
	if flags.Changed("lookback-days") {
		cfg.Projection.LookbackDays = runLookback
	}
	if flags.Changed("data-dir") {
		cfg.Data.Dir = runDataDir
	}
	if flags.Changed("cache-file") {
		cfg.Data.CacheFile = runCacheFile
	}
	if flags.Changed("projections-file") {
		cfg.Data.LedgerFile = runLedgerFile
	}
	if flags.Changed("readme") {
		cfg.Report.ReadmePath = runReadmePath
	}
	if flags.Changed("skip-readme") {
		cfg.Report.SkipReadme = runSkipReadme
	}
	if flags.Changed("timeout") {
		cfg.Source.TimeoutSeconds = runTimeoutSecs
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
