package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profvolz/gasspeicher/projection"
	"github.com/profvolz/gasspeicher/series"
)

func testRecord(t *testing.T, runAt time.Time) *projection.Record {
	t.Helper()

	eng := projection.Engine{
		MinimumPct:   20,
		LookbackDays: 30,
		SourceURLA:   "https://example.test/a",
		SourceURLB:   "https://example.test/b",
		Now:          func() time.Time { return runAt },
		Location:     time.FixedZone("CET", 3600),
	}

	delta := -0.6
	s := series.Series{{
		Day:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Level: 89.4,
		Delta: &delta,
	}}

	rec, err := eng.Run(s, "network")
	require.NoError(t, err)
	return rec
}

func TestSQLiteRecordAndList(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "history.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	first := testRecord(t, time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC))
	second := testRecord(t, time.Date(2025, 1, 4, 8, 0, 0, 0, time.UTC))

	require.NoError(t, db.RecordRun(first))
	require.NoError(t, db.RecordRun(second))

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.RunID, runs[0].RunID)
	assert.Equal(t, first.RunID, runs[1].RunID)

	assert.Equal(t, "network", runs[0].SourceMode)
	assert.Equal(t, "2025-01-02", runs[0].LatestDataDate)
	assert.InDelta(t, 89.4, runs[0].CurrentLevelPct, 1e-9)
	// The average scenario crossed, so a target date is joined in.
	assert.NotEmpty(t, runs[0].AvgTargetDate)
}

func TestSQLiteRecordDuplicateRunID(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "history.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	rec := testRecord(t, time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC))
	require.NoError(t, db.RecordRun(rec))

	// Runs are append-only and keyed by run_id.
	err = db.RecordRun(rec)
	assert.Error(t, err)
}

func TestSQLiteListLimit(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "history.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 5; i++ {
		rec := testRecord(t, time.Date(2025, 1, 3+i, 8, 0, 0, 0, time.UTC))
		require.NoError(t, db.RecordRun(rec))
	}

	runs, err := db.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
