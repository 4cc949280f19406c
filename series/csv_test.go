package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Gastag;Füllstand in %;Veränderung zum Vortag in %;Speicherstand in TWh
03.01.2025;88,9;-0,5;220,1
01.01.2025;90,0;-0,5;223,0
02.01.2025;89,4;-0,6;221,5
`

func TestParse(t *testing.T) {
	s, err := Parse(sampleCSV)
	require.NoError(t, err)
	require.Len(t, s, 3)

	// Sorted ascending by day regardless of input order.
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), s[0].Day)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), s[1].Day)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), s[2].Day)

	assert.InDelta(t, 90.0, s[0].Level, 1e-9)
	require.NotNil(t, s[1].Delta)
	assert.InDelta(t, -0.6, *s[1].Delta, 1e-9)
}

func TestParseDropsBadRows(t *testing.T) {
	csv := `Gastag;Füllstand in %;Veränderung zum Vortag in %
Summe;91,0;-0,1
01.01.2025;90,0;-0,5
02.01.2025;n.v.;-0,6
03.01.2025;88,9;n.v.
`
	s, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, s, 2)

	// Unparseable date and missing fill level are dropped entirely; a
	// missing delta keeps the row with a nil Delta.
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), s[0].Day)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), s[1].Day)
	assert.Nil(t, s[1].Delta)
	require.NotNil(t, s[0].Delta)
}

func TestParseBOMAndEnglishHeaders(t *testing.T) {
	csv := "\uFEFFDay;Fill level (%);Change vs previous day (%)\n01.01.2025;75,5;-0,4\n"
	s, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.InDelta(t, 75.5, s[0].Level, 1e-9)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyInput)

	// Header only, no data rows.
	_, err = Parse("Gastag;Füllstand in %;Veränderung zum Vortag in %\n")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseColumnNotFound(t *testing.T) {
	// No recognizable change column.
	csv := `Gastag;Füllstand in %;Einspeisung
01.01.2025;90,0;1,2
`
	_, err := Parse(csv)
	assert.ErrorIs(t, err, ErrColumnNotFound)

	// No recognizable fill column.
	csv = `Gastag;Einspeisung;Veränderung zum Vortag in %
01.01.2025;1,2;-0,5
`
	_, err = Parse(csv)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestParseKeepsDuplicateDates(t *testing.T) {
	csv := `Gastag;Füllstand in %;Veränderung zum Vortag in %
01.01.2025;90,0;-0,5
01.01.2025;89,9;-0,6
`
	s, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, s[0].Day, s[1].Day)
	// Stable sort preserves input order for equal days.
	assert.InDelta(t, 90.0, s[0].Level, 1e-9)
	assert.InDelta(t, 89.9, s[1].Level, 1e-9)
}

func TestParseAllRowsDropped(t *testing.T) {
	csv := `Gastag;Füllstand in %;Veränderung zum Vortag in %
kein Datum;90,0;-0,5
`
	_, err := Parse(csv)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
