package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profvolz/gasspeicher/projection"
	"github.com/profvolz/gasspeicher/series"
)

func testRecord(t *testing.T) *projection.Record {
	t.Helper()

	eng := projection.Engine{
		MinimumPct:   20,
		LookbackDays: 30,
		Now: func() time.Time {
			return time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)
		},
		Location: time.FixedZone("CET", 3600),
	}

	d1, d2 := -0.5, -0.6
	s := series.Series{
		{Day: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Level: 90.0, Delta: &d1},
		{Day: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Level: 89.4, Delta: &d2},
	}

	rec, err := eng.Run(s, "cache")
	require.NoError(t, err)
	return rec
}

func TestSummary(t *testing.T) {
	out := Summary(testRecord(t))

	assert.Contains(t, out, "Projektion #Gasspeicher DE vom 2025-01-03")
	assert.Contains(t, out, "Fuellstand 89.4% am 2025-01-02 (Minimum 20.0%)")
	assert.Contains(t, out, "Datenquelle url_b wurde geladen aus: cache")
	assert.Contains(t, out, "Szenarien - Minimum wird erreicht am:")
	assert.Contains(t, out, "- Durchschnittliche Entnahme: 2025-05-08 | Rate -0.55%/Tag | Tage bis Minimum 126.182")
	assert.Contains(t, out, "Datenquelle: @bnetza")
	assert.Contains(t, out, "Analyse: @ProfVolz")
}

func TestTrimFloat(t *testing.T) {
	// Whole numbers keep a single decimal, fractional values lose only
	// their trailing zeros.
	assert.Equal(t, "20.0", trimFloat(20, 4))
	assert.Equal(t, "89.4", trimFloat(89.4, 4))
	assert.Equal(t, "-0.55", trimFloat(-0.55, 6))
	assert.Equal(t, "126.182", trimFloat(126.182, 3))
	assert.Equal(t, "0.0", trimFloat(0, 3))
}

func TestSummaryNotReached(t *testing.T) {
	eng := projection.Engine{
		MinimumPct:   20,
		LookbackDays: 30,
		Now:          func() time.Time { return time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC) },
		Location:     time.UTC,
	}
	d := 0.2
	s := series.Series{{Day: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Level: 89.4, Delta: &d}}
	rec, err := eng.Run(s, "network")
	require.NoError(t, err)

	out := Summary(rec)
	assert.Contains(t, out, "nicht erreicht (nicht-negative Rate)")
}

const readmeDoc = `# Gasspeicher

Some intro text.

## Aktuelle Projektion

` + "```" + `
old content
` + "```" + `

## Methodik

` + "```" + `
untouched block
` + "```" + `
`

func TestUpdateBlock(t *testing.T) {
	patched, ok := UpdateBlock(readmeDoc, "## Aktuelle Projektion", "new content")
	require.True(t, ok)
	assert.Contains(t, patched, "```\nnew content\n```")
	assert.NotContains(t, patched, "old content")
	// Only the block after the heading is touched.
	assert.Contains(t, patched, "untouched block")
}

func TestUpdateBlockMissingHeading(t *testing.T) {
	out, ok := UpdateBlock(readmeDoc, "## Nicht vorhanden", "new content")
	assert.False(t, ok)
	assert.Equal(t, readmeDoc, out)
}

func TestUpdateBlockMissingFence(t *testing.T) {
	doc := "# Titel\n\n## Aktuelle Projektion\n\nKein Codeblock hier.\n"
	out, ok := UpdateBlock(doc, "## Aktuelle Projektion", "new content")
	assert.False(t, ok)
	assert.Equal(t, doc, out)
}

func TestUpdateBlockUnclosedFence(t *testing.T) {
	doc := "## Aktuelle Projektion\n\n```\nnever closed\n"
	out, ok := UpdateBlock(doc, "## Aktuelle Projektion", "new content")
	assert.False(t, ok)
	assert.Equal(t, doc, out)
}

func TestPatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(readmeDoc), 0o644))

	rec := testRecord(t)
	ok := PatchFile(path, "## Aktuelle Projektion", rec)
	require.True(t, ok)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Projektion #Gasspeicher DE vom 2025-01-03")
	assert.NotContains(t, string(data), "old content")
	assert.Contains(t, string(data), "untouched block")
}

func TestPatchFileMissingIsWarning(t *testing.T) {
	rec := testRecord(t)
	ok := PatchFile(filepath.Join(t.TempDir(), "README.md"), "## Aktuelle Projektion", rec)
	assert.False(t, ok)
}
