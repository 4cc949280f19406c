// Package ledger persists projection runs: an append-only CSV table whose
// schema may grow between runs, plus a SQLite mirror for querying history.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Table is an in-memory tabular ledger: an ordered header plus rows aligned
// to it. Cells absent from a row's originating record are empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// LoadCSV reads a ledger file. A missing or empty file yields an empty table
// rather than an error, since the first run creates the ledger.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	t := &Table{Columns: records[0]}
	for _, rec := range records[1:] {
		row := make([]string, len(t.Columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Append adds one record to the table, reconciling schema drift: columns the
// table has never seen are appended (in the record's field order) and
// backfilled with empty values on existing rows; columns the record lacks
// stay empty in the new row. Existing row order is preserved.
func (t *Table) Append(columns []string, values map[string]string) {
	if len(t.Columns) == 0 {
		t.Columns = append([]string(nil), columns...)
	} else {
		known := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			known[c] = true
		}
		for _, c := range columns {
			if !known[c] {
				t.Columns = append(t.Columns, c)
				for i := range t.Rows {
					t.Rows[i] = append(t.Rows[i], "")
				}
			}
		}
	}

	row := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = values[c]
	}
	t.Rows = append(t.Rows, row)
}

// WriteCSV rewrites the whole ledger file. There is deliberately no in-place
// row append: schema growth forces a full rewrite anyway.
func (t *Table) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return f.Close()
}

// AppendCSV loads the ledger at path, appends one record and writes the
// merged table back.
func AppendCSV(path string, columns []string, values map[string]string) error {
	t, err := LoadCSV(path)
	if err != nil {
		return err
	}
	t.Append(columns, values)
	return t.WriteCSV(path)
}
