package ledger

// Schema for the SQLite history mirror. One row per projection run; scenario
// columns are flattened the same way as in the CSV ledger.
const Schema = `
CREATE TABLE IF NOT EXISTS projection_runs (
	run_id TEXT PRIMARY KEY,
	run_timestamp_utc DATETIME NOT NULL,
	run_date_berlin TEXT NOT NULL,
	data_source_mode TEXT NOT NULL,
	source_url_a TEXT NOT NULL,
	source_url_b TEXT NOT NULL,
	lookback_days INTEGER NOT NULL,
	minimum_threshold_pct REAL NOT NULL,
	latest_data_date TEXT NOT NULL,
	current_fill_level_pct REAL NOT NULL,
	rate_min_pct_per_day REAL NOT NULL,
	rate_avg_pct_per_day REAL NOT NULL,
	rate_max_pct_per_day REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS scenario_results (
	run_id TEXT NOT NULL REFERENCES projection_runs(run_id),
	position INTEGER NOT NULL,
	scenario_key TEXT NOT NULL,
	scenario_label TEXT NOT NULL,
	rate_pct_per_day REAL NOT NULL,
	target_date TEXT,
	days_to_min REAL,
	PRIMARY KEY (run_id, scenario_key)
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON projection_runs(run_timestamp_utc);
`
