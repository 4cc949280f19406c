package ledger

import (
	"fmt"
)

// ListRuns returns the most recent runs, newest first, with the average
// scenario's target date joined in for the listing.
func (s *SQLite) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT r.run_id, r.run_timestamp_utc, r.run_date_berlin, r.data_source_mode,
		       r.latest_data_date, r.current_fill_level_pct,
		       COALESCE(sc.target_date, '')
		FROM projection_runs r
		LEFT JOIN scenario_results sc
		       ON sc.run_id = r.run_id AND sc.scenario_key = 'average_withdrawal'
		ORDER BY r.run_timestamp_utc DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(
			&r.RunID,
			&r.RunTimestampUTC,
			&r.RunDateBerlin,
			&r.SourceMode,
			&r.LatestDataDate,
			&r.CurrentLevelPct,
			&r.AvgTargetDate,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
