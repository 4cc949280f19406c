// Package projection derives linear depletion scenarios from the storage
// series: rolling-window withdrawal statistics and five fixed rate
// assumptions extrapolated to the date the minimum threshold is crossed.
package projection

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/profvolz/gasspeicher/pkg/id"
	"github.com/profvolz/gasspeicher/series"
)

var (
	// ErrEmptyWindow means the lookback window contains no rows.
	ErrEmptyWindow = errors.New("no rows available in requested lookback window")

	// ErrNoRateData means no daily change values exist inside the window.
	ErrNoRateData = errors.New("no daily change values available to compute projections")
)

// Engine computes one projection Record per run. The zero value is not
// usable; construct with the parameters of the run. Now and Location exist so
// tests can pin the wall clock and the civil timezone.
type Engine struct {
	MinimumPct   float64
	LookbackDays int
	SourceURLA   string
	SourceURLB   string

	Now      func() time.Time
	Location *time.Location
}

// Run projects the series and returns the completed record. sourceMode tags
// where the source text came from ("network" or "cache").
func (e *Engine) Run(s series.Series, sourceMode string) (*Record, error) {
	window := s.Tail(e.LookbackDays)
	if len(window) == 0 {
		return nil, ErrEmptyWindow
	}

	last := window.Last()
	currentLevel := last.Level

	var rates []float64
	for _, p := range window {
		if p.Delta != nil {
			rates = append(rates, *p.Delta)
		}
	}
	if len(rates) == 0 {
		return nil, ErrNoRateData
	}

	rateMin, rateMax, rateAvg := stats(rates)

	// 20% more and less severe than the observed extremes.
	rateMin20 := rateMin - math.Abs(rateMin)*0.2
	rateMax20 := rateMax + math.Abs(rateMax)*0.2

	scenarioRates := map[ScenarioKey]float64{
		Optimistic:         rateMax20,
		SmallestWithdrawal: rateMax,
		AverageWithdrawal:  rateAvg,
		LargestWithdrawal:  rateMin,
		Pessimistic:        rateMin20,
	}

	nowUTC := e.now().UTC()
	berlin, err := e.location()
	if err != nil {
		return nil, err
	}

	rec := &Record{
		RunID:           id.New(),
		RunTimestampUTC: nowUTC,
		RunDateBerlin:   nowUTC.In(berlin).Format(dateLayout),
		SourceMode:      sourceMode,
		SourceURLA:      e.SourceURLA,
		SourceURLB:      e.SourceURLB,
		LookbackDays:    e.LookbackDays,
		MinimumPct:      e.MinimumPct,
		LatestDataDate:  last.Day,
		CurrentLevelPct: currentLevel,
		RateMin:         rateMin,
		RateAvg:         rateAvg,
		RateMax:         rateMax,
	}

	for _, sc := range Scenarios {
		rate := scenarioRates[sc.Key]
		result := ScenarioResult{Key: sc.Key, Label: sc.Label, Rate: rate}

		// A non-negative rate never reaches the minimum; the comparison uses
		// the unrounded rate on purpose.
		if rate < 0 {
			days := math.Max((currentLevel-e.MinimumPct)/math.Abs(rate), 0)
			target := targetDate(last.Day, days)
			result.DaysToMin = &days
			result.TargetDate = &target
		}
		rec.Scenarios = append(rec.Scenarios, result)
	}

	return rec, nil
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) location() (*time.Location, error) {
	if e.Location != nil {
		return e.Location, nil
	}
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return nil, fmt.Errorf("load civil timezone: %w", err)
	}
	return loc, nil
}

func stats(rates []float64) (min, max, avg float64) {
	min = rates[0]
	max = rates[0]
	sum := 0.0
	for _, r := range rates {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
		sum += r
	}
	return min, max, sum / float64(len(rates))
}

// targetDate advances anchor by a fractional number of days and truncates to
// the calendar day, so 126.18 days past Jan 2 lands on May 8 rather than 9.
// The whole days go through AddDate because a single Duration overflows
// int64 nanoseconds somewhere past 106751 days.
func targetDate(anchor time.Time, days float64) time.Time {
	whole := math.Floor(days)
	t := anchor.AddDate(0, 0, int(whole)).Add(time.Duration((days - whole) * 24 * float64(time.Hour)))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
