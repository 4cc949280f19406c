package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Füllstand in %", "fullstand_in_pct"},
		{"FÜLLSTAND", "fullstand"},
		{"Veränderung zum Vortag in %", "veranderung_zum_vortag_in_pct"},
		{"Change vs previous day (%)", "change_vs_previous_day_(pct)"},
		{"  Gas  Tag  ", "gas_tag"},
		{"Größe", "groe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeColumn(tt.in), "input %q", tt.in)
	}
}

func TestFillLevelColumnVariants(t *testing.T) {
	// Diacritics, casing and the "ue" transliteration all resolve to the
	// same logical column.
	for _, header := range []string{"Füllstand", "FULLSTAND", "fuellstand", "Fill level (%)"} {
		idx := findColumn([]string{header}, fillLevelMatchers)
		assert.Equal(t, 0, idx, "header %q should resolve as fill level", header)
	}

	idx := findColumn([]string{"Gaseinspeisung"}, fillLevelMatchers)
	assert.Equal(t, -1, idx)
}

func TestDailyChangeColumnVariants(t *testing.T) {
	for _, header := range []string{
		"Veränderung zum Vortag in %",
		"Änderung ggü. Vortag",
		"Change vs previous day",
	} {
		idx := findColumn([]string{header}, dailyChangeMatchers)
		assert.Equal(t, 0, idx, "header %q should resolve as daily change", header)
	}

	// "Vortag" alone is not enough without a change token.
	idx := findColumn([]string{"Vortag"}, dailyChangeMatchers)
	assert.Equal(t, -1, idx)
}

func TestFindColumnFirstMatchWins(t *testing.T) {
	headers := []string{"Fill estimate", "Füllstand in %"}
	assert.Equal(t, 0, findColumn(headers, fillLevelMatchers))
}
