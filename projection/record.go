package projection

import (
	"math"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ScenarioResult is one scenario's projection. TargetDate and DaysToMin are
// nil when the scenario rate is non-negative and the minimum is never reached.
type ScenarioResult struct {
	Key        ScenarioKey
	Label      string
	Rate       float64
	TargetDate *time.Time
	DaysToMin  *float64
}

// Record is the flattened outcome of one projection run: run metadata,
// window statistics and all five scenario results. It is appended immutably
// to the ledger and mirrored into the SQLite history.
type Record struct {
	RunID           string
	RunTimestampUTC time.Time
	RunDateBerlin   string
	SourceMode      string
	SourceURLA      string
	SourceURLB      string
	LookbackDays    int
	MinimumPct      float64
	LatestDataDate  time.Time
	CurrentLevelPct float64
	RateMin         float64
	RateAvg         float64
	RateMax         float64
	Scenarios       []ScenarioResult
}

// Scenario returns the result for a key, or nil.
func (r *Record) Scenario(key ScenarioKey) *ScenarioResult {
	for i := range r.Scenarios {
		if r.Scenarios[i].Key == key {
			return &r.Scenarios[i]
		}
	}
	return nil
}

// Row flattens the record into ledger columns and values. The column order is
// the canonical header order for a freshly created ledger; values are
// pre-rounded for persistence (level 4, rates 6, days 3 decimals).
func (r *Record) Row() ([]string, map[string]string) {
	columns := []string{
		"run_id",
		"run_timestamp_utc",
		"run_date_berlin",
		"data_source_mode",
		"source_url_a",
		"source_url_b",
		"lookback_days",
		"minimum_threshold_pct",
		"latest_data_date",
		"current_fill_level_pct",
		"rate_min_pct_per_day",
		"rate_avg_pct_per_day",
		"rate_max_pct_per_day",
	}
	values := map[string]string{
		"run_id":                 r.RunID,
		"run_timestamp_utc":      r.RunTimestampUTC.UTC().Format(time.RFC3339),
		"run_date_berlin":        r.RunDateBerlin,
		"data_source_mode":       r.SourceMode,
		"source_url_a":           r.SourceURLA,
		"source_url_b":           r.SourceURLB,
		"lookback_days":          strconv.Itoa(r.LookbackDays),
		"minimum_threshold_pct":  formatFloat(r.MinimumPct, 6),
		"latest_data_date":       r.LatestDataDate.Format(dateLayout),
		"current_fill_level_pct": formatFloat(r.CurrentLevelPct, 4),
		"rate_min_pct_per_day":   formatFloat(r.RateMin, 6),
		"rate_avg_pct_per_day":   formatFloat(r.RateAvg, 6),
		"rate_max_pct_per_day":   formatFloat(r.RateMax, 6),
	}

	for _, s := range r.Scenarios {
		rateCol := string(s.Key) + "_rate_pct_per_day"
		targetCol := string(s.Key) + "_target_date"
		daysCol := string(s.Key) + "_days_to_min"

		columns = append(columns, rateCol, targetCol, daysCol)
		values[rateCol] = formatFloat(s.Rate, 6)
		if s.TargetDate != nil {
			values[targetCol] = s.TargetDate.Format(dateLayout)
		} else {
			values[targetCol] = ""
		}
		if s.DaysToMin != nil {
			values[daysCol] = formatFloat(*s.DaysToMin, 3)
		} else {
			values[daysCol] = ""
		}
	}

	return columns, values
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// formatFloat rounds to the given number of decimals and renders without
// trailing zeros, matching how the history has always been written.
func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(roundTo(v, decimals), 'f', -1, 64)
}
