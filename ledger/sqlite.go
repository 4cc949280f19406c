package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/profvolz/gasspeicher/projection"
)

// SQLite mirrors projection runs into a queryable history database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the history database and applies the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordRun inserts one projection run and its five scenario rows in a
// single transaction.
func (s *SQLite) RecordRun(rec *projection.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO projection_runs
		(run_id, run_timestamp_utc, run_date_berlin, data_source_mode,
		 source_url_a, source_url_b, lookback_days, minimum_threshold_pct,
		 latest_data_date, current_fill_level_pct,
		 rate_min_pct_per_day, rate_avg_pct_per_day, rate_max_pct_per_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.RunTimestampUTC.UTC(), rec.RunDateBerlin, rec.SourceMode,
		rec.SourceURLA, rec.SourceURLB, rec.LookbackDays, rec.MinimumPct,
		rec.LatestDataDate.Format("2006-01-02"), rec.CurrentLevelPct,
		rec.RateMin, rec.RateAvg, rec.RateMax,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, sc := range rec.Scenarios {
		var target sql.NullString
		if sc.TargetDate != nil {
			target = sql.NullString{String: sc.TargetDate.Format("2006-01-02"), Valid: true}
		}
		var days sql.NullFloat64
		if sc.DaysToMin != nil {
			days = sql.NullFloat64{Float64: *sc.DaysToMin, Valid: true}
		}

		_, err = tx.Exec(`
			INSERT INTO scenario_results
			(run_id, position, scenario_key, scenario_label, rate_pct_per_day, target_date, days_to_min)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.RunID, i, string(sc.Key), sc.Label, sc.Rate, target, days,
		)
		if err != nil {
			return fmt.Errorf("insert scenario %s: %w", sc.Key, err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	RunID           string
	RunTimestampUTC time.Time
	RunDateBerlin   string
	SourceMode      string
	LatestDataDate  string
	CurrentLevelPct float64
	AvgTargetDate   string
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
