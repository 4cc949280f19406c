package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrEmptyInput means the source text parsed to zero data rows.
	ErrEmptyInput = errors.New("source CSV is empty")

	// ErrColumnNotFound means the fill-level or daily-change column could not
	// be resolved from the headers.
	ErrColumnNotFound = errors.New("required columns not found in CSV: need fill level and daily change")
)

// dayLayouts are tried in order for the first (date) column. The export uses
// day-first German dates; ISO is accepted for older cached revisions.
var dayLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02.01.06",
	"02/01/2006",
	"2006-01-02",
}

// Parse normalizes the semicolon-separated, comma-decimal BNetzA export into
// a Series. Rows with an unparseable date or a missing fill level are
// dropped; a missing daily change is kept as a nil Delta. The result is
// sorted ascending by day (duplicate days are preserved in input order).
func Parse(text string) (Series, error) {
	text = strings.TrimPrefix(text, "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read source CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyInput
	}

	// Column 0 is always the day column, whatever its original header said.
	headers := rows[0]
	if len(headers) < 2 {
		return nil, ErrColumnNotFound
	}
	fillIdx := 1 + findColumn(headers[1:], fillLevelMatchers)
	deltaIdx := 1 + findColumn(headers[1:], dailyChangeMatchers)
	if fillIdx == 0 || deltaIdx == 0 {
		return nil, ErrColumnNotFound
	}

	var out Series
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		day, ok := parseDay(row[0])
		if !ok {
			continue
		}

		level, ok := fieldFloat(row, fillIdx)
		if !ok {
			continue
		}

		p := Point{Day: day, Level: level}
		if delta, ok := fieldFloat(row, deltaIdx); ok {
			p.Delta = &delta
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, ErrEmptyInput
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out, nil
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fieldFloat decodes a comma-decimal numeric field. Anything non-numeric
// counts as missing.
func fieldFloat(row []string, idx int) (float64, bool) {
	if idx >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[idx])
	if s == "" || s == "-" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
